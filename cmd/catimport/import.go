package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/poissondor/catimport/internal/catalog"
	"github.com/poissondor/catimport/internal/feed"
)

func newImportCmd() *cobra.Command {
	var (
		yes    bool
		dryRun bool
		sheet  string
	)

	cmd := &cobra.Command{
		Use:   "import <feed.xlsx>",
		Short: "Import a product feed into the catalog",
		Long: `Import reads a spreadsheet product feed and reconciles it against the
catalog: rows whose barcode already exists update the product and its
localized text, new barcodes create both rows. The whole feed is committed
as one batch; if the batch aborts, nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], yes, dryRun, sheet)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and plan every row without writing")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (default: first sheet)")
	return cmd
}

func runImport(ctx context.Context, path string, yes, dryRun bool, sheet string) error {
	opts := feedOptions()
	if sheet != "" {
		opts.Sheet = sheet
	}

	rows, err := feed.ReadFile(path, opts)
	if err != nil {
		return err
	}
	slog.Info("feed loaded", "file", path, "rows", len(rows))

	if len(rows) == 0 {
		fmt.Println("Feed contains no product rows, nothing to do.")
		return nil
	}

	if !yes && !dryRun {
		if !confirm(os.Stdin, fmt.Sprintf("Import %d rows into the catalog? [y/N]: ", len(rows))) {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
	defer cancel()

	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	importer := catalog.New(
		catalog.NewDB(pool),
		catalog.WithLocale(cfg.Import.LangID, cfg.Import.ShopID),
	)

	var summary catalog.Summary
	if dryRun {
		summary, err = importer.DryRun(ctx, rows)
	} else {
		summary, err = importer.Run(ctx, rows)
	}
	if err != nil {
		return fmt.Errorf("import aborted, no rows committed: %w", err)
	}

	printSummary(summary)
	return nil
}

// confirm reads one line and accepts the usual yes spellings. The feed
// operators answer in French as often as not, so "o"/"oui" count too.
func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}

func printSummary(s catalog.Summary) {
	fmt.Println(strings.Repeat("=", 50))
	if s.DryRun {
		fmt.Println("DRY RUN: nothing was written")
	}
	fmt.Printf("Created: %d\n", s.Created)
	fmt.Printf("Updated: %d\n", s.Updated)
	fmt.Printf("Errors:  %d\n", s.Errors)
	fmt.Printf("Total:   %d rows in %s\n", s.Total, s.Duration.Round(time.Millisecond))
	fmt.Println(strings.Repeat("=", 50))
}
