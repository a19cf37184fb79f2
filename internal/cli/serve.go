package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/server"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the extraction, gap analysis, sameAs, and schema
operations over HTTP:

  GET  /health
  POST /v1/citations/extract
  POST /v1/gaps/analyze
  POST /v1/sameas/generate
  POST /v1/schema/generate

Example:
  aeoscan serve
  aeoscan serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := model.DefaultConfig()
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Questions.APIKey = key
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "aeoscan",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return server.New(cfg, logger).Run(ctx)
}
