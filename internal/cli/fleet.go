package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trainyard/internal/fleet"
	"github.com/mesh-intelligence/trainyard/internal/seed"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

func newFleetCmd(flags *rootFlags) *cobra.Command {
	return newShellCmd(types.StructureFleet, "Manage trains and their cargo manifests", flags, newFleetShell)
}

func newFleetShell(s *session) (*shell, error) {
	roster := fleet.New(fleet.WithListener(s.listener()))
	if s.cfg.Seed {
		if err := seed.Fleet(roster); err != nil {
			return nil, err
		}
	}
	return &shell{
		name:     types.StructureFleet,
		banner:   "Train Fleet Manager",
		sess:     s,
		commands: func() []*cobra.Command { return fleetCommands(s, roster) },
		refresh:  func() { s.metrics.SetFleet(roster.Len(), roster.CargoCount()) },
	}, nil
}

func fleetCommands(s *session, roster *fleet.Roster) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:         "display",
			Short:       "Show every train with its manifest",
			Args:        cobra.NoArgs,
			Annotations: operation("display"),
			RunE: func(cmd *cobra.Command, args []string) error {
				s.render.Fleet(roster.Trains())
				return nil
			},
		},
		{
			Use:         "add-train <id> <name> <capacity>",
			Short:       "Add a train with an empty manifest",
			Args:        cobra.ExactArgs(3),
			Annotations: operation("add_train"),
			RunE: func(cmd *cobra.Command, args []string) error {
				capacity, err := parseInt(args[2], "capacity", types.ErrInvalidCapacity)
				if err != nil {
					return err
				}
				if err := roster.AddTrain(args[0], args[1], capacity); err != nil {
					return err
				}
				fmt.Fprintf(s.out, "[Fleet] Train added: [%s] %s (max %d tons)\n", args[0], args[1], capacity)
				return nil
			},
		},
		{
			Use:         "remove-train <id>",
			Short:       "Remove a train and its cargo",
			Args:        cobra.ExactArgs(1),
			Annotations: operation("remove_train"),
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := roster.RemoveTrain(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "[Fleet] Train removed: [%s] %s\n", removed.ID, removed.Name)
				return nil
			},
		},
		{
			Use:         "load <train-id> <name> <category> <weight>",
			Short:       "Load cargo onto a train",
			Args:        cobra.ExactArgs(4),
			Annotations: operation("load"),
			RunE: func(cmd *cobra.Command, args []string) error {
				weight, err := parseInt(args[3], "weight", types.ErrInvalidWeight)
				if err != nil {
					return err
				}
				c := types.Cargo{Name: args[1], Category: args[2], Weight: weight}
				if err := roster.LoadCargo(args[0], c); err != nil {
					return err
				}
				fmt.Fprintf(s.out, "[Train %s] [Loaded] %s\n", args[0], c)
				return nil
			},
		},
		{
			Use:         "unload <train-id> <name>",
			Short:       "Unload the first cargo item with that name",
			Args:        cobra.ExactArgs(2),
			Annotations: operation("unload"),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := roster.UnloadCargo(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "[Train %s] [Unloaded] %q\n", args[0], c.Name)
				return nil
			},
		},
		{
			Use:         "show <id>",
			Short:       "Show one train and its manifest",
			Args:        cobra.ExactArgs(1),
			Annotations: operation("show"),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := roster.Train(args[0])
				if err != nil {
					return err
				}
				s.render.Train(t)
				return nil
			},
		},
	}
}
