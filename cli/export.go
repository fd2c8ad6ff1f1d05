package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jurisnote/models"
	"jurisnote/service"
)

type exportOptions struct {
	category string
	query    string
	out      string
	archive  bool
}

func newExportCmd(root *rootOptions) *cobra.Command {
	o := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved notes to an XLSX workbook",
		Long: `Export writes the matching notes to an XLSX workbook, either to a local
file (--out) or to the configured export archive (--archive).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.archive == (o.out != "") {
				return errors.New("exactly one of --out or --archive is required")
			}
			a, err := root.buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := commandContext(cmd)
			req := service.BrowseRequest{Category: o.category, Query: o.query}

			if o.archive {
				res, err := a.Exports.Archive(ctx, req)
				if err != nil {
					return errors.New(service.UserMessage(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.StoragePath)
				fmt.Fprintf(cmd.ErrOrStderr(), "%d rows archived (export %s)\n", res.Rows, res.ExportID)
				return nil
			}

			res, err := a.Exports.Workbook(ctx, req)
			if err != nil {
				return errors.New(service.UserMessage(err))
			}
			if err := os.WriteFile(o.out, res.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", o.out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d rows written to %s\n", res.Rows, o.out)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.category, "category", models.AllCategories, "top-level category filter")
	cmd.Flags().StringVarP(&o.query, "q", "q", "", "search text")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the workbook to this file")
	cmd.Flags().BoolVar(&o.archive, "archive", false, "upload the workbook to the export archive")
	return cmd
}
