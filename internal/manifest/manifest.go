// Package manifest implements the cargo manifest carried by one train: a
// singly linked list of cargo items kept in load order.
//
// A Manifest never enforces capacity; that is the owning train's job. Cargo
// names are not required to be unique. Unload removes the first match.
package manifest

import (
	"fmt"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

type node struct {
	cargo types.Cargo
	next  *node
}

// Manifest is a singly linked list of cargo with head and tail references.
// The zero value is an empty manifest with no listener.
type Manifest struct {
	head     *node
	tail     *node
	count    int
	owner    string
	listener types.Listener
}

// Option configures a Manifest.
type Option func(*Manifest)

// WithListener routes load and unload events to l.
func WithListener(l types.Listener) Option {
	return func(m *Manifest) { m.listener = l }
}

// WithOwner sets the train id reported as the subject of emitted events.
func WithOwner(trainID string) Option {
	return func(m *Manifest) { m.owner = trainID }
}

// New returns an empty manifest.
func New(opts ...Option) *Manifest {
	m := &Manifest{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load appends c at the tail and emits a cargo.loaded event. It always
// succeeds.
func (m *Manifest) Load(c types.Cargo) {
	n := &node{cargo: c}
	if m.head == nil {
		m.head, m.tail = n, n
	} else {
		m.tail.next = n
		m.tail = n
	}
	m.count++
	m.emit(types.EventCargoLoaded, c)
}

// Unload removes the first item named name and returns it. Returns
// ErrNotFound when no item matches; the manifest is unchanged.
func (m *Manifest) Unload(name string) (types.Cargo, error) {
	var prev *node
	for cur := m.head; cur != nil; prev, cur = cur, cur.next {
		if cur.cargo.Name != name {
			continue
		}
		if prev == nil {
			m.head = cur.next
		} else {
			prev.next = cur.next
		}
		if cur.next == nil {
			m.tail = prev
		}
		cur.next = nil
		m.count--
		m.emit(types.EventCargoUnloaded, cur.cargo)
		return cur.cargo, nil
	}
	return types.Cargo{}, fmt.Errorf("cargo %q: %w", name, types.ErrNotFound)
}

// TotalWeight sums the weight of every item by walking the list.
func (m *Manifest) TotalWeight() int {
	total := 0
	for cur := m.head; cur != nil; cur = cur.next {
		total += cur.cargo.Weight
	}
	return total
}

// Count returns the number of items.
func (m *Manifest) Count() int { return m.count }

// Items returns the cargo front to back. The slice is a copy.
func (m *Manifest) Items() []types.Cargo {
	items := make([]types.Cargo, 0, m.count)
	for cur := m.head; cur != nil; cur = cur.next {
		items = append(items, cur.cargo)
	}
	return items
}

func (m *Manifest) emit(kind string, c types.Cargo) {
	if m.listener == nil {
		return
	}
	m.listener.Notify(types.Event{
		Kind:      kind,
		Structure: types.StructureFleet,
		Subject:   m.owner,
		Detail:    c.String(),
	})
}
