package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ncskier/CapriciousCroissants-sub000/play"
	"github.com/ncskier/CapriciousCroissants-sub000/prefabs"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [level...]",
		Short: "check that levels load and build",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				var err error
				if names, err = a.lib.LevelNames(); err != nil {
					return err
				}
			}
			specs, err := a.lib.LoadLevels(cmd.Context(), names)
			if err != nil {
				return err
			}

			results := make([]string, len(specs))
			var (
				mu   sync.Mutex
				errs []error
			)
			var g errgroup.Group
			g.SetLimit(4)
			for i, spec := range specs {
				g.Go(func() error {
					results[i] = describe(a.lib, spec, &mu, &errs)
					return nil
				})
			}
			_ = g.Wait()
			for _, line := range results {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return errors.Join(errs...)
		},
	}
}

func describe(lib *prefabs.Library, spec prefabs.LevelSpec, mu *sync.Mutex, errs *[]error) string {
	l, err := play.BuildLevel(lib, spec)
	if err != nil {
		mu.Lock()
		*errs = append(*errs, err)
		mu.Unlock()
		return fmt.Sprintf("FAIL %s: %v", spec.Name, err)
	}
	return fmt.Sprintf("ok   %s %dx%d allies=%d enemies=%d hash=%016x",
		spec.Name, l.Board.Width(), l.Board.Height(), len(l.Board.Allies()), len(l.Board.Enemies()), l.Board.Hash())
}
