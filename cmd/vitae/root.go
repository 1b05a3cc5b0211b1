package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tsawler/vitae"
	"github.com/tsawler/vitae/internal/config"
	"github.com/tsawler/vitae/internal/logging"
)

const app = config.App

// env is the state shared by the subcommands of one invocation.
type env struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          app,
		Short:        "vitae extracts structured resume data from PDF documents",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&e.cfgFile, "config", "", "a config file (default is vitae.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	e.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	e.v.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(newParseCmd(e), newServeCmd(e), newVersionCmd())

	return rootCmd
}

// load reads the configuration and builds the logger.
func (e *env) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(e.v, e.cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	return cfg, logger, nil
}

// pipeline returns the extractor settings described by cfg.
func pipeline(cfg *config.ParseConfig) func(*vitae.Extractor) *vitae.Extractor {
	return func(ext *vitae.Extractor) *vitae.Extractor {
		ext = ext.
			WithLineConfig(cfg.LineConfig()).
			WithSubsectionConfig(cfg.SubsectionConfig())
		if !cfg.PrivacyFilter {
			ext = ext.SkipPrivacyFilter()
		}
		if cfg.KeepPageFurniture {
			ext = ext.KeepPageFurniture()
		}
		if cfg.IgnoreEmbedded {
			ext = ext.IgnoreEmbeddedResume()
		}
		return ext
	}
}
