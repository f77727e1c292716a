package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/config"
	"github.com/ncskier/CapriciousCroissants-sub000/logging"
	"github.com/ncskier/CapriciousCroissants-sub000/prefabs"
)

// app is what every subcommand shares once the config is read.
type app struct {
	configPath string
	levelsDir  string

	cfg *config.Config
	log *zap.Logger
	lib *prefabs.Library
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tilepuzzle",
		Short:         "sliding tile puzzle with enemies",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to the TOML config file")
	root.PersistentFlags().StringVar(&a.levelsDir, "levels", "", "directory overriding the built-in levels, prefabs and scripts")

	root.AddCommand(
		newPlayCmd(a),
		newValidateCmd(a),
		newShowCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.levelsDir != "" {
		cfg.Levels.Dir = a.levelsDir
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.lib = prefabs.NewLibrary(cfg.Levels.Dir)
	return nil
}
