// Package cli implements the trainyard command-line interface: the root
// command, config handling and one interactive shell per container.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
}

// systemError marks failures that are not the user's fault (I/O, database).
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// NewRootCmd creates the top-level "trainyard" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "trainyard",
		Short: "Interactive shells for a train fleet, its route and a playlist",
		Long: "Trainyard manages a fleet of trains with cargo manifests, a circular\n" +
			"route of stations and a playlist, each through its own interactive shell.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/trainyard)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newFleetCmd(flags))
	root.AddCommand(newRouteCmd(flags))
	root.AddCommand(newPlaylistCmd(flags))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

func exitCode(err error) int {
	var se *systemError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &se):
		return exitSysError
	default:
		return exitUserError
	}
}
