package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jurisnote/models"
	"jurisnote/service"
)

type browseOptions struct {
	category string
	query    string
	json     bool
}

func newBrowseCmd(root *rootOptions) *cobra.Command {
	o := &browseOptions{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List saved case notes",
		Long: `Browse prints saved notes, optionally filtered by top-level category and a
substring search over the title, issues and holdings.

Example:
  jurisnote browse --category 형사법 --q 사기`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Notebook.Browse(commandContext(cmd), service.BrowseRequest{Category: o.category, Query: o.query})
			if err != nil {
				return errors.New(service.UserMessage(err))
			}
			if !res.Available {
				fmt.Fprintln(cmd.ErrOrStderr(), "저장소 연결을 확인해주세요.")
			}

			if o.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(res)
			}
			printCards(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.category, "category", models.AllCategories, "top-level category filter")
	cmd.Flags().StringVarP(&o.query, "q", "q", "", "search text")
	cmd.Flags().BoolVar(&o.json, "json", false, "print cards as JSON")
	return cmd
}

func printCards(w io.Writer, res *service.BrowseResult) {
	switch {
	case res.Total == 0:
		fmt.Fprintln(w, "아직 저장된 판례가 없습니다.")
		return
	case len(res.Cards) == 0:
		fmt.Fprintf(w, "조건에 맞는 판례가 없습니다. (전체 %d건)\n", res.Total)
		return
	}
	fmt.Fprintf(w, "%d건 / 전체 %d건\n", len(res.Cards), res.Total)
	for _, card := range res.Cards {
		fmt.Fprintln(w, strings.Repeat("─", 60))
		fmt.Fprintf(w, "%s  (%s · %s)\n", card.Title, card.Date, card.ID)
		if len(card.Tags) > 0 {
			fmt.Fprintf(w, "[%s]\n", strings.Join(card.Tags, "] ["))
		}
		for _, s := range card.Sections {
			fmt.Fprintf(w, "\n■ %s\n%s\n", s.Label, s.Text)
		}
		if card.Memo != "" {
			fmt.Fprintf(w, "\n메모: %s\n", card.Memo)
		}
		if card.URL != "" {
			fmt.Fprintf(w, "원문 보기: %s\n", card.URL)
		}
	}
}
