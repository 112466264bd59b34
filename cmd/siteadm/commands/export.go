package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/infra/export"
)

var (
	exportOut    string
	exportStatus string
)

var exportCmd = &cobra.Command{
	Use:       "export sites|submissions",
	Short:     "Write sites or submissions to an XLSX file",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"sites", "submissions"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if err := checkStatus(kind, exportStatus); err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = export.FileName(kind, time.Now())
		}

		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		n, err := writeExport(ctx, pool, kind, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(out)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s written to %s\n", n, kind, out)
		return nil
	},
}

func checkStatus(kind, status string) error {
	if status == "" {
		return nil
	}
	ok := sites.Status(status).Valid()
	if kind == "submissions" {
		ok = submissions.Status(status).Valid()
	}
	if !ok {
		return fmt.Errorf("unknown status %q", status)
	}
	return nil
}

func writeExport(ctx context.Context, pool *pgxpool.Pool, kind string, f *os.File) (int, error) {
	log := cliLogger()
	if kind == "sites" {
		list, err := sites.NewService(sites.NewRepo(pool), log).FindAll(ctx, sites.Status(exportStatus))
		if err != nil {
			return 0, err
		}
		return len(list), export.Sites(f, list)
	}
	list, err := submissions.NewService(submissions.NewRepo(pool), nil, log).FindAll(ctx, submissions.Status(exportStatus))
	if err != nil {
		return 0, err
	}
	return len(list), export.Submissions(f, list)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default <kind>_<timestamp>.xlsx)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only rows in this status")
}
