package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/trainyard/internal/playlist"
	"github.com/mesh-intelligence/trainyard/internal/seed"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

func newPlaylistCmd(flags *rootFlags) *cobra.Command {
	return newShellCmd(types.StructurePlaylist, "Manage a playlist with a now-playing cursor", flags, newPlaylistShell)
}

func newPlaylistShell(s *session) (*shell, error) {
	p := playlist.New(playlist.WithListener(s.listener()))
	if s.cfg.Seed {
		if err := seed.Playlist(p); err != nil {
			return nil, err
		}
	}
	return &shell{
		name:     types.StructurePlaylist,
		banner:   "SoundTrack Playlist Manager",
		sess:     s,
		commands: func() []*cobra.Command { return playlistCommands(s, p) },
		refresh:  func() { s.metrics.SetPlaylist(p.Len()) },
	}, nil
}

func nowPlaying(s *session, t types.Track) {
	fmt.Fprintf(s.out, "Now playing: %q by %s [%s]\n", t.Title, t.Artist, t.Duration())
}

func step(s *session, move func() (playlist.Move, error), wrapNotice string) error {
	m, err := move()
	if err != nil {
		return err
	}
	if m.Wrapped {
		fmt.Fprintln(s.out, wrapNotice)
	}
	nowPlaying(s, m.Track)
	return nil
}

func playlistCommands(s *session, p *playlist.Playlist) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:         "display",
			Short:       "Show the playlist from first to last",
			Args:        cobra.NoArgs,
			Annotations: operation("display"),
			RunE: func(cmd *cobra.Command, args []string) error {
				s.render.Playlist(fmt.Sprintf("Playlist (%d songs)", p.Len()), p.Forward())
				return nil
			},
		},
		{
			Use:         "reverse",
			Short:       "Show the playlist from last to first",
			Args:        cobra.NoArgs,
			Annotations: operation("reverse"),
			RunE: func(cmd *cobra.Command, args []string) error {
				s.render.Playlist("Playlist (reversed)", p.Reverse())
				return nil
			},
		},
		{
			Use:         "add <title> <artist> <minutes> <seconds>",
			Short:       "Append a track",
			Args:        cobra.ExactArgs(4),
			Annotations: operation("add"),
			RunE: func(cmd *cobra.Command, args []string) error {
				minutes, err := parseInt(args[2], "minutes", types.ErrInvalidDuration)
				if err != nil {
					return err
				}
				seconds, err := parseInt(args[3], "seconds", types.ErrInvalidDuration)
				if err != nil {
					return err
				}
				t, err := types.NewTrack(args[0], args[1], minutes, seconds)
				if err != nil {
					return err
				}
				if err := p.AddTrack(t); err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Added: %q by %s\n", t.Title, t.Artist)
				return nil
			},
		},
		{
			Use:         "remove <title>",
			Short:       "Remove a track",
			Args:        cobra.ExactArgs(1),
			Annotations: operation("remove"),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := p.RemoveTrack(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Removed: %q\n", t.Title)
				return nil
			},
		},
		{
			Use:         "play",
			Short:       "Show the current track",
			Args:        cobra.NoArgs,
			Annotations: operation("play"),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := p.Current()
				if err != nil {
					return err
				}
				nowPlaying(s, t)
				return nil
			},
		},
		{
			Use:         "next",
			Short:       "Skip to the next track",
			Args:        cobra.NoArgs,
			Annotations: operation("next"),
			RunE: func(cmd *cobra.Command, args []string) error {
				return step(s, p.Next, "(Looping back to start)")
			},
		},
		{
			Use:         "prev",
			Aliases:     []string{"previous"},
			Short:       "Go back to the previous track",
			Args:        cobra.NoArgs,
			Annotations: operation("previous"),
			RunE: func(cmd *cobra.Command, args []string) error {
				return step(s, p.Previous, "(Looping back to end)")
			},
		},
		{
			Use:         "loop",
			Short:       "Toggle loop mode",
			Args:        cobra.NoArgs,
			Annotations: operation("toggle_loop"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if p.ToggleLoop() {
					fmt.Fprintln(s.out, "Loop ON")
				} else {
					fmt.Fprintln(s.out, "Loop OFF")
				}
				return nil
			},
		},
	}
}
