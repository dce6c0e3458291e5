// Package cli implements the textprep command line.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
	"github.com/custodia-labs/textprep/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	configDir string
)

// Services are the driving ports the commands run against.
type Services struct {
	Pipeline driving.PipelineService
	Profile  driving.ProfileService
	Settings driving.SettingsService
	Close    func() error
}

// BootstrapFunc builds the services once flags have been parsed.
type BootstrapFunc func(configDir string) (*Services, error)

var (
	pipelineService driving.PipelineService
	profileService  driving.ProfileService
	settingsService driving.SettingsService

	bootstrap   BootstrapFunc
	closeFunc   func() error
	servicesSet bool
)

var rootCmd = &cobra.Command{
	Use:   "textprep",
	Short: "Text preprocessing for retrieval pipelines",
	Long: `textprep normalises noisy business text, splits it into token windows,
extracts ranked keywords and sentiment, and attaches embedding vectors.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages and timings")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.textprep)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects services directly.
func SetServices(s *Services) {
	pipelineService = s.Pipeline
	profileService = s.Profile
	settingsService = s.Settings
	closeFunc = s.Close
	servicesSet = true
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer func() {
		if closeFunc != nil {
			if err := closeFunc(); err != nil {
				logger.Error("close: %v", err)
			}
		}
	}()
	return rootCmd.Execute()
}

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipBootstrap] == "true" || servicesSet || bootstrap == nil {
		return nil
	}

	s, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func requirePipeline() error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}
	return nil
}

// normaliseDefaults returns the configured normalisation options.
func normaliseDefaults() domain.NormaliseOptions {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Normalise
		}
	}
	return domain.DefaultNormaliseOptions()
}
