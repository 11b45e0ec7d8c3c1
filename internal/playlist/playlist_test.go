package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

func track(title string) types.Track {
	return types.Track{Title: title, Artist: "artist " + title, DurationSeconds: 180}
}

func newPlaylist(t *testing.T, titles ...string) *Playlist {
	t.Helper()
	p := New()
	for _, title := range titles {
		require.NoError(t, p.AddTrack(track(title)))
	}
	return p
}

func titles(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Track.Title)
	}
	return out
}

func currentTitle(t *testing.T, p *Playlist) string {
	t.Helper()
	tr, err := p.Current()
	require.NoError(t, err)
	return tr.Title
}

// requireLinked checks that prev/next links agree across the whole list.
func requireLinked(t *testing.T, p *Playlist) {
	t.Helper()
	if p.size == 0 {
		require.Nil(t, p.head)
		require.Nil(t, p.tail)
		return
	}
	require.Nil(t, p.head.prev)
	require.Nil(t, p.tail.next)
	count := 0
	for n := p.head; n != nil; n = n.next {
		if n.next != nil {
			require.Same(t, n, n.next.prev, "back link of %q", n.next.track.Title)
		} else {
			require.Same(t, p.tail, n)
		}
		count++
	}
	require.Equal(t, p.size, count)
	require.NotNil(t, p.find(p.current), "current %q not in playlist", p.current)
}

func TestAddTrack(t *testing.T) {
	p := New()
	_, err := p.Current()
	assert.ErrorIs(t, err, types.ErrEmpty)

	require.NoError(t, p.AddTrack(track("A")))
	assert.Equal(t, "A", currentTitle(t, p))

	require.NoError(t, p.AddTrack(track("B")))
	require.NoError(t, p.AddTrack(track("C")))
	assert.Equal(t, "A", currentTitle(t, p), "only the first track auto-selects")
	assert.Equal(t, []string{"A", "B", "C"}, titles(p.Forward()))
	requireLinked(t, p)
}

func TestAddTrackRejects(t *testing.T) {
	p := newPlaylist(t, "A")
	assert.ErrorIs(t, p.AddTrack(track("A")), types.ErrDuplicateID)
	assert.ErrorIs(t, p.AddTrack(types.Track{Title: ""}), types.ErrInvalidName)
	assert.ErrorIs(t, p.AddTrack(types.Track{Title: "X", DurationSeconds: -1}), types.ErrInvalidDuration)
	assert.Equal(t, 1, p.Len())
}

func TestRemoveTrack(t *testing.T) {
	tests := []struct {
		name        string
		moves       int
		remove      string
		wantTitles  []string
		wantCurrent string
		wantErr     error
	}{
		{name: "current head moves to successor", remove: "A", wantTitles: []string{"B", "C"}, wantCurrent: "B"},
		{name: "current middle moves to successor", moves: 1, remove: "B", wantTitles: []string{"A", "C"}, wantCurrent: "C"},
		{name: "current tail moves to predecessor", moves: 2, remove: "C", wantTitles: []string{"A", "B"}, wantCurrent: "B"},
		{name: "non-current keeps cursor", moves: 2, remove: "A", wantTitles: []string{"B", "C"}, wantCurrent: "C"},
		{name: "missing", remove: "Z", wantTitles: []string{"A", "B", "C"}, wantCurrent: "A", wantErr: types.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlaylist(t, "A", "B", "C")
			for i := 0; i < tt.moves; i++ {
				_, err := p.Next()
				require.NoError(t, err)
			}

			_, err := p.RemoveTrack(tt.remove)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantTitles, titles(p.Forward()))
			assert.Equal(t, reversed(tt.wantTitles), titles(p.Reverse()))
			assert.Equal(t, tt.wantCurrent, currentTitle(t, p))
			requireLinked(t, p)
		})
	}
}

func TestRemoveLastTrackClearsCurrent(t *testing.T) {
	p := newPlaylist(t, "Solo")

	removed, err := p.RemoveTrack("Solo")
	require.NoError(t, err)
	assert.Equal(t, "Solo", removed.Title)
	requireLinked(t, p)

	_, err = p.Current()
	assert.ErrorIs(t, err, types.ErrEmpty)
	_, err = p.Next()
	assert.ErrorIs(t, err, types.ErrEmpty)
	_, err = p.Previous()
	assert.ErrorIs(t, err, types.ErrEmpty)

	require.NoError(t, p.AddTrack(track("Again")))
	assert.Equal(t, "Again", currentTitle(t, p))
}

func TestNextAtEnd(t *testing.T) {
	p := newPlaylist(t, "A", "B")

	m, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "B", m.Track.Title)
	assert.False(t, m.Wrapped)

	_, err = p.Next()
	assert.ErrorIs(t, err, types.ErrAtEnd)
	assert.Equal(t, "B", currentTitle(t, p))

	assert.True(t, p.ToggleLoop())
	m, err = p.Next()
	require.NoError(t, err)
	assert.True(t, m.Wrapped)
	assert.Equal(t, "A", m.Track.Title)
	assert.Equal(t, "A", currentTitle(t, p))
}

func TestPreviousAtStart(t *testing.T) {
	p := newPlaylist(t, "A", "B", "C")

	_, err := p.Previous()
	assert.ErrorIs(t, err, types.ErrAtStart)
	assert.Equal(t, "A", currentTitle(t, p))

	p.ToggleLoop()
	m, err := p.Previous()
	require.NoError(t, err)
	assert.True(t, m.Wrapped)
	assert.Equal(t, "C", m.Track.Title)

	m, err = p.Previous()
	require.NoError(t, err)
	assert.False(t, m.Wrapped)
	assert.Equal(t, "B", m.Track.Title)
}

func TestToggleLoopKeepsCursor(t *testing.T) {
	p := newPlaylist(t, "A", "B")
	_, err := p.Next()
	require.NoError(t, err)

	assert.False(t, p.Looping())
	assert.True(t, p.ToggleLoop())
	assert.True(t, p.Looping())
	assert.Equal(t, "B", currentTitle(t, p))
	assert.False(t, p.ToggleLoop())
	assert.Equal(t, "B", currentTitle(t, p))
}

func TestSingleTrackLoop(t *testing.T) {
	p := newPlaylist(t, "Only")
	p.ToggleLoop()

	m, err := p.Next()
	require.NoError(t, err)
	assert.True(t, m.Wrapped)
	assert.Equal(t, "Only", m.Track.Title)

	m, err = p.Previous()
	require.NoError(t, err)
	assert.True(t, m.Wrapped)
	assert.Equal(t, "Only", m.Track.Title)
}

func TestForwardReverseRoundTrip(t *testing.T) {
	p := newPlaylist(t, "Blinding Lights", "As It Was", "Heat Waves", "Levitating")
	_, err := p.Next()
	require.NoError(t, err)

	fwd := p.Forward()
	rev := p.Reverse()

	assert.Equal(t, reversed(titles(fwd)), titles(rev))
	require.Len(t, rev, 4)
	assert.Equal(t, 4, rev[0].Position)
	assert.Equal(t, 1, rev[3].Position)
	assert.True(t, fwd[1].Current)
	assert.True(t, rev[2].Current)
}

func TestPlaylistEvents(t *testing.T) {
	var got []string
	p := New(WithListener(types.ListenerFunc(func(e types.Event) {
		got = append(got, e.Kind+":"+e.Subject+":"+e.Detail)
	})))

	require.NoError(t, p.AddTrack(types.Track{Title: "A", Artist: "X"}))
	_, _ = p.Next()
	p.ToggleLoop()
	_, err := p.Next()
	require.NoError(t, err)
	_, err = p.RemoveTrack("A")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"track.added:A:X",
		"playlist.loop::true",
		"playlist.moved:A:wrap",
		"track.removed:A:X",
	}, got)
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
