package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/play"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <level>",
		Short: "print the starting board of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.lib.LoadLevel(args[0])
			if err != nil {
				return err
			}
			l, err := play.BuildLevel(a.lib, spec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %dx%d colors=%d seed=%d\n", spec.Name, l.Board.Width(), l.Board.Height(), spec.Board.Colors, spec.Board.Seed)
			fmt.Fprint(out, l.Board.String())
			for _, e := range l.Board.AllEnemies() {
				loc, err := ecs.Get(l.World, e, component.LocationComponent.Kind())
				if err != nil {
					return err
				}
				name := "enemy"
				if idle, err := ecs.Get(l.World, e, component.IdleComponent.Kind()); err == nil {
					name = idle.Sprite
				}
				fmt.Fprintf(out, "enemy %s at %v facing %v\n", name, loc.Point(), loc.Facing)
			}
			fmt.Fprintf(out, "hash %016x\n", l.Board.Hash())
			return nil
		},
	}
}
