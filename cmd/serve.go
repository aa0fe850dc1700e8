package cmd

import (
	"os"

	"pyviz/internal/config"
	"pyviz/internal/server"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	hostFlag string
	portFlag int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation HTTP API",
	Long: `serve starts an HTTP server exposing the translation pipeline:

  GET  /health         liveness probe
  POST /api/analyze    analyze Python source, returns the analysis summary
  POST /api/translate  full translation, returns the generated script

Host and port come from the configuration file and can be overridden by
flags or the PYVIZ_HOST / PYVIZ_PORT environment variables.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&hostFlag, "host", "", "Host to bind")
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		color.Red("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if hostFlag != "" {
		cfg.Server.Host = hostFlag
	}
	if portFlag != 0 {
		cfg.Server.Port = portFlag
	}

	srv := server.New(cfg)
	color.Green("Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		color.Red("Server error: %v\n", err)
		os.Exit(1)
	}
}
