package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/adapters/driving/rest"
	"github.com/custodia-labs/textprep/internal/core/services"
)

var (
	serveAddr     string
	serveFindPort bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the pipeline over HTTP.

Routes:
  GET  /healthz
  POST /v1/normalise
  POST /v1/process
  GET  /v1/documents/:id/status
  GET  /v1/profiles/:businessId`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().BoolVar(&serveFindPort, "find-port", false, "use the next free port if the address is taken")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" && settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			addr = s.Server.Addr
		}
	}
	if addr == "" {
		addr = ":8080"
	}

	if serveFindPort {
		var err error
		if addr, err = services.FindAvailableAddr(addr, services.DefaultPortSpan); err != nil {
			return err
		}
	}

	server, err := rest.NewServer(rest.Ports{
		Pipeline: pipelineService,
		Profile:  profileService,
	}, rest.WithNormaliseOptions(normaliseDefaults()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", addr)
	return server.Run(ctx, addr)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
