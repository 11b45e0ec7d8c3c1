// Package route implements the station loop: a circular singly linked list
// of station names with a cursor marking where the fleet currently is.
//
// The cursor is stored as the current station's name and resolved by
// lookup, so removing a node can never leave it dangling. Every walk around
// the circle is bounded by the loop size.
package route

import (
	"fmt"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

type stationNode struct {
	name string
	next *stationNode
}

// Stop is one station in a route listing.
type Stop struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

// Loop is a closed cycle of stations. The tail's successor is always head.
type Loop struct {
	head     *stationNode
	current  string
	size     int
	listener types.Listener
}

// Option configures a Loop.
type Option func(*Loop)

// WithListener routes station events to l.
func WithListener(l types.Listener) Option {
	return func(lp *Loop) { lp.listener = l }
}

// New returns an empty loop.
func New(opts ...Option) *Loop {
	lp := &Loop{}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

// Len returns the number of stations.
func (lp *Loop) Len() int { return lp.size }

// Current returns the station the fleet is at. ok is false only when the
// loop is empty.
func (lp *Loop) Current() (name string, ok bool) {
	if lp.size == 0 {
		return "", false
	}
	return lp.current, true
}

// Head returns the first station of the loop.
func (lp *Loop) Head() (string, bool) {
	if lp.head == nil {
		return "", false
	}
	return lp.head.name, true
}

// AddStation inserts name as the new tail, closing the circle back to head.
// The first station added becomes current. Returns ErrDuplicateID if the
// station is already on the loop.
func (lp *Loop) AddStation(name string) error {
	if name == "" {
		return fmt.Errorf("station: %w", types.ErrInvalidName)
	}

	n := &stationNode{name: name}
	if lp.head == nil {
		n.next = n
		lp.head = n
		lp.current = name
		lp.size = 1
		lp.emit(types.EventStationAdded, name)
		return nil
	}

	tail := lp.head
	for i := 0; i < lp.size; i++ {
		if tail.name == name {
			return fmt.Errorf("station %q: %w", name, types.ErrDuplicateID)
		}
		if tail.next == lp.head {
			break
		}
		tail = tail.next
	}

	tail.next = n
	n.next = lp.head
	lp.size++
	lp.emit(types.EventStationAdded, name)
	return nil
}

// RemoveStation unlinks the named station and re-stitches the circle. If
// the fleet was at that station it moves on to the removed station's former
// successor. Returns ErrNotFound after one full circle without a match.
func (lp *Loop) RemoveStation(name string) error {
	if lp.head == nil {
		return fmt.Errorf("station %q: %w", name, types.ErrNotFound)
	}

	var prev *stationNode
	cur := lp.head
	for i := 0; i < lp.size; i++ {
		if cur.name == name {
			lp.unlink(prev, cur)
			lp.emit(types.EventStationRemoved, name)
			return nil
		}
		prev, cur = cur, cur.next
	}
	return fmt.Errorf("station %q: %w", name, types.ErrNotFound)
}

// unlink removes cur, whose predecessor is prev (nil when cur is head).
// The cursor is relocated before the node is detached.
func (lp *Loop) unlink(prev, cur *stationNode) {
	if lp.size == 1 {
		lp.head = nil
		lp.current = ""
		lp.size = 0
		cur.next = nil
		return
	}

	if lp.current == cur.name {
		lp.current = cur.next.name
	}

	if cur == lp.head {
		tail := lp.tail()
		lp.head = cur.next
		tail.next = lp.head
	} else {
		prev.next = cur.next
	}
	cur.next = nil
	lp.size--
}

// tail walks at most size-1 links from head to the node whose successor is
// head.
func (lp *Loop) tail() *stationNode {
	t := lp.head
	for i := 1; i < lp.size && t.next != lp.head; i++ {
		t = t.next
	}
	return t
}

// Advance moves the fleet to the next station and returns its name. The
// circle always has a successor, so this only fails with ErrEmpty.
func (lp *Loop) Advance() (string, error) {
	n := lp.find(lp.current)
	if n == nil {
		return "", fmt.Errorf("route: %w", types.ErrEmpty)
	}
	lp.current = n.next.name
	lp.emit(types.EventRouteAdvanced, lp.current)
	return lp.current, nil
}

// Stops walks exactly one circle from head and marks the current station.
func (lp *Loop) Stops() []Stop {
	out := make([]Stop, 0, lp.size)
	cur := lp.head
	for i := 0; i < lp.size; i++ {
		out = append(out, Stop{Name: cur.name, Current: cur.name == lp.current})
		cur = cur.next
	}
	return out
}

// find resolves a station name to its node within one circle.
func (lp *Loop) find(name string) *stationNode {
	cur := lp.head
	for i := 0; i < lp.size; i++ {
		if cur.name == name {
			return cur
		}
		cur = cur.next
	}
	return nil
}

func (lp *Loop) emit(kind, subject string) {
	if lp.listener == nil {
		return
	}
	lp.listener.Notify(types.Event{
		Kind:      kind,
		Structure: types.StructureRoute,
		Subject:   subject,
	})
}
