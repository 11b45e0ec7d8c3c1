// Package playlist implements the play sequence: a doubly linked list of
// tracks with a now-playing cursor and a loop mode that lets the cursor wrap
// between tail and head.
//
// As with the station loop, the cursor is stored as the current track's
// title and resolved by lookup.
package playlist

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

type trackNode struct {
	track types.Track
	prev  *trackNode
	next  *trackNode
}

// Entry is one track in a listing. Position is 1-based from head.
type Entry struct {
	Position int         `json:"position"`
	Track    types.Track `json:"track"`
	Current  bool        `json:"current"`
}

// Move describes the outcome of Next or Previous.
type Move struct {
	Track   types.Track
	Wrapped bool
}

// Playlist is a doubly linked sequence of tracks.
type Playlist struct {
	head     *trackNode
	tail     *trackNode
	current  string
	size     int
	loop     bool
	listener types.Listener
}

// Option configures a Playlist.
type Option func(*Playlist)

// WithListener routes playlist events to l.
func WithListener(l types.Listener) Option {
	return func(p *Playlist) { p.listener = l }
}

// New returns an empty playlist with loop mode off.
func New(opts ...Option) *Playlist {
	p := &Playlist{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return p.size }

// Looping reports whether loop mode is on.
func (p *Playlist) Looping() bool { return p.loop }

// AddTrack appends t at the tail. The first track added to an empty
// playlist becomes current. Returns ErrDuplicateID if the title exists.
func (p *Playlist) AddTrack(t types.Track) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if p.find(t.Title) != nil {
		return fmt.Errorf("track %q: %w", t.Title, types.ErrDuplicateID)
	}

	n := &trackNode{track: t}
	if p.head == nil {
		p.head, p.tail = n, n
		p.current = t.Title
	} else {
		n.prev = p.tail
		p.tail.next = n
		p.tail = n
	}
	p.size++
	p.emit(types.EventTrackAdded, t.Title, t.Artist)
	return nil
}

// RemoveTrack unlinks the first track with the given title. If it was
// current, the cursor moves to its successor, else its predecessor, else
// the playlist has no current track.
func (p *Playlist) RemoveTrack(title string) (types.Track, error) {
	n := p.find(title)
	if n == nil {
		return types.Track{}, fmt.Errorf("track %q: %w", title, types.ErrNotFound)
	}

	if p.current == title {
		switch {
		case n.next != nil:
			p.current = n.next.track.Title
		case n.prev != nil:
			p.current = n.prev.track.Title
		default:
			p.current = ""
		}
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		p.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		p.tail = n.prev
	}
	n.prev, n.next = nil, nil
	p.size--

	p.emit(types.EventTrackRemoved, title, n.track.Artist)
	return n.track, nil
}

// Current returns the now-playing track, or ErrEmpty.
func (p *Playlist) Current() (types.Track, error) {
	n := p.currentNode()
	if n == nil {
		return types.Track{}, fmt.Errorf("playlist: %w", types.ErrEmpty)
	}
	return n.track, nil
}

// Next moves the cursor forward. At the tail it wraps to head when loop
// mode is on and reports ErrAtEnd otherwise, leaving the cursor unchanged.
func (p *Playlist) Next() (Move, error) {
	n := p.currentNode()
	if n == nil {
		return Move{}, fmt.Errorf("playlist: %w", types.ErrEmpty)
	}
	switch {
	case n.next != nil:
		return p.moveTo(n.next, false), nil
	case p.loop:
		return p.moveTo(p.head, true), nil
	default:
		return Move{}, fmt.Errorf("track %q: %w", n.track.Title, types.ErrAtEnd)
	}
}

// Previous moves the cursor backward, wrapping to tail in loop mode and
// reporting ErrAtStart otherwise.
func (p *Playlist) Previous() (Move, error) {
	n := p.currentNode()
	if n == nil {
		return Move{}, fmt.Errorf("playlist: %w", types.ErrEmpty)
	}
	switch {
	case n.prev != nil:
		return p.moveTo(n.prev, false), nil
	case p.loop:
		return p.moveTo(p.tail, true), nil
	default:
		return Move{}, fmt.Errorf("track %q: %w", n.track.Title, types.ErrAtStart)
	}
}

// ToggleLoop flips loop mode and returns the new setting. The cursor does
// not move.
func (p *Playlist) ToggleLoop() bool {
	p.loop = !p.loop
	p.emit(types.EventPlaylistLoop, "", strconv.FormatBool(p.loop))
	return p.loop
}

// Forward lists the tracks head to tail using next links.
func (p *Playlist) Forward() []Entry {
	out := make([]Entry, 0, p.size)
	pos := 1
	for n := p.head; n != nil && pos <= p.size; n = n.next {
		out = append(out, Entry{Position: pos, Track: n.track, Current: n.track.Title == p.current})
		pos++
	}
	return out
}

// Reverse lists the tracks tail to head using prev links. Positions count
// down from the size.
func (p *Playlist) Reverse() []Entry {
	out := make([]Entry, 0, p.size)
	pos := p.size
	for n := p.tail; n != nil && pos >= 1; n = n.prev {
		out = append(out, Entry{Position: pos, Track: n.track, Current: n.track.Title == p.current})
		pos--
	}
	return out
}

func (p *Playlist) moveTo(n *trackNode, wrapped bool) Move {
	p.current = n.track.Title
	detail := "step"
	if wrapped {
		detail = "wrap"
	}
	p.emit(types.EventPlaylistMoved, n.track.Title, detail)
	return Move{Track: n.track, Wrapped: wrapped}
}

func (p *Playlist) currentNode() *trackNode {
	if p.size == 0 {
		return nil
	}
	return p.find(p.current)
}

// find scans head to tail for the first track with the given title.
func (p *Playlist) find(title string) *trackNode {
	i := 0
	for n := p.head; n != nil && i < p.size; n = n.next {
		if n.track.Title == title {
			return n
		}
		i++
	}
	return nil
}

func (p *Playlist) emit(kind, subject, detail string) {
	if p.listener == nil {
		return
	}
	p.listener.Notify(types.Event{
		Kind:      kind,
		Structure: types.StructurePlaylist,
		Subject:   subject,
		Detail:    detail,
	})
}
