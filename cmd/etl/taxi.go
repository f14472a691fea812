package main

import (
	"time"

	"github.com/spf13/cobra"

	"vienna_etl/internal/adapters/tripfile"
	"vienna_etl/internal/adapters/webapi"
	"vienna_etl/internal/app"
)

const downloadTimeout = 5 * time.Minute

var (
	taxiSkipDownload bool
	taxiPreview      int
)

var taxiCmd = &cobra.Command{
	Use:   "taxi",
	Short: "Download the NYC yellow-taxi parquet file and replace its table",
	RunE:  runTaxi,
}

func init() {
	taxiCmd.Flags().BoolVar(&taxiSkipDownload, "skip-download", false, "reuse the parquet file already on disk")
	taxiCmd.Flags().IntVar(&taxiPreview, "preview", 5, "rows to log from the loaded table (0 disables)")
	rootCmd.AddCommand(taxiCmd)
}

func runTaxi(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc := app.NewTaxiService(
		webapi.NewDownloader(cfg.UserAgent, downloadTimeout),
		tripfile.Reader{},
		newLoader(ctx),
	)
	return svc.Run(ctx, app.TaxiOptions{
		URL:      cfg.TaxiURL,
		File:     cfg.TaxiFile,
		Table:    pipe.TaxiTable,
		Download: !taxiSkipDownload,
		Preview:  taxiPreview,
	})
}
