// Command textprep normalises, chunks and enriches business text.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/textprep/internal/adapters/driving/cli"
	"github.com/custodia-labs/textprep/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(func(configDir string) (*cli.Services, error) {
		return app.Build(context.Background(), configDir)
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
