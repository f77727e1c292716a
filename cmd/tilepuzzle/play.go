package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/game"
	"github.com/ncskier/CapriciousCroissants-sub000/settings"
)

func newPlayCmd(a *app) *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "open a window and play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := settings.Open(a.cfg.Settings.Path)
			if err != nil {
				return err
			}
			g, err := game.New(a.cfg, a.lib, store, a.log, level)
			if err != nil {
				return err
			}
			defer func() {
				if err := g.Close(); err != nil {
					a.log.Warn("close", zap.Error(err))
				}
			}()

			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			ebiten.SetWindowTitle(a.cfg.Window.Title)
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().StringVar(&level, "level", "", "level to start on (defaults to levels.first)")
	return cmd
}
