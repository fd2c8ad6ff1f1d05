package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jurisnote/service"
	"jurisnote/sources"
)

var nowFunc = time.Now

type analyzeOptions struct {
	file      string
	url       string
	save      bool
	memo      string
	sourceURL string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract a case note from decision text",
		Long: `Analyze sends the decision text to the configured LLM and prints the
extracted note as JSON. Text is read from --file, fetched from --url, or
read from stdin.

Example:
  jurisnote analyze --file decision.txt
  jurisnote analyze --url https://example.org/decision/123 --save --memo "check appeal"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, o)
		},
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "read decision text from file (default: stdin)")
	cmd.Flags().StringVar(&o.url, "url", "", "fetch decision text from a web page")
	cmd.Flags().BoolVar(&o.save, "save", false, "append the extracted note to the store")
	cmd.Flags().StringVar(&o.memo, "memo", "", "personal memo saved with the note")
	cmd.Flags().StringVar(&o.sourceURL, "source-url", "", "URL saved with the note (default: --url)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, o *analyzeOptions) error {
	a, err := root.buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := commandContext(cmd)

	caseText, err := readCaseText(cmd, a.Fetcher, o)
	if err != nil {
		return err
	}

	res, err := a.Analysis.Analyze(ctx, service.AnalyzeRequest{CaseText: caseText})
	if err != nil {
		return errors.New(service.UserMessage(err))
	}

	form := service.NewReviewForm(a.Layout, *res.Result, nowFunc())
	if form.DateFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), "선고일자를 인식하지 못해 오늘 날짜(%s)를 사용합니다.\n", form.DateString())
	}
	draft := form.Draft()
	draft.Memo = o.memo
	draft.URL = o.sourceURL
	if draft.URL == "" {
		draft.URL = o.url
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(draft); err != nil {
		return err
	}

	if !o.save {
		return nil
	}
	rec, err := a.Notebook.Save(ctx, draft)
	if err != nil {
		return errors.New(service.UserMessage(err))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "저장되었습니다: %s\n", rec.Key())
	return nil
}

func readCaseText(cmd *cobra.Command, fetcher *sources.Fetcher, o *analyzeOptions) (string, error) {
	switch {
	case o.url != "" && o.file != "":
		return "", errors.New("--url and --file are mutually exclusive")
	case o.url != "":
		src, err := fetcher.Fetch(commandContext(cmd), o.url)
		if err != nil {
			return "", fmt.Errorf("원문을 가져오지 못했습니다: %w", err)
		}
		return src.Text, nil
	case o.file != "" && o.file != "-":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
