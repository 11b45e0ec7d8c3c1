package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trainyard/internal/route"
	"github.com/mesh-intelligence/trainyard/internal/seed"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

func newRouteCmd(flags *rootFlags) *cobra.Command {
	return newShellCmd(types.StructureRoute, "Manage the circular station route", flags, newRouteShell)
}

func newRouteShell(s *session) (*shell, error) {
	loop := route.New(route.WithListener(s.listener()))
	if s.cfg.Seed {
		if err := seed.Route(loop); err != nil {
			return nil, err
		}
	}
	return &shell{
		name:     types.StructureRoute,
		banner:   "Route Loop Manager",
		sess:     s,
		commands: func() []*cobra.Command { return routeCommands(s, loop) },
		refresh:  func() { s.metrics.SetRoute(loop.Len()) },
	}, nil
}

func routeCommands(s *session, loop *route.Loop) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:         "display",
			Short:       "Show one full circle of stations",
			Args:        cobra.NoArgs,
			Annotations: operation("display"),
			RunE: func(cmd *cobra.Command, args []string) error {
				s.render.Route(loop.Stops())
				return nil
			},
		},
		{
			Use:         "add <name>",
			Short:       "Add a station before the wrap back to the first",
			Args:        cobra.ExactArgs(1),
			Annotations: operation("add"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := loop.AddStation(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(s.out, "[Route] Station added: %q\n", args[0])
				return nil
			},
		},
		{
			Use:         "remove <name>",
			Short:       "Remove a station",
			Args:        cobra.ExactArgs(1),
			Annotations: operation("remove"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := loop.RemoveStation(args[0]); err != nil {
					return err
				}
				if loop.Len() == 0 {
					fmt.Fprintf(s.out, "[Route] Removed last station %q. Route is now empty.\n", args[0])
					return nil
				}
				fmt.Fprintf(s.out, "[Route] Removed station %q\n", args[0])
				return nil
			},
		},
		{
			Use:         "advance",
			Short:       "Move the fleet to the next station",
			Args:        cobra.NoArgs,
			Annotations: operation("advance"),
			RunE: func(cmd *cobra.Command, args []string) error {
				at, err := loop.Advance()
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "[Route] Fleet arrived at: %q\n", at)
				return nil
			},
		},
	}
}
