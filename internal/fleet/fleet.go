// Package fleet implements the train roster: a singly linked list of trains
// in insertion order, where every train owns its cargo manifest.
//
// Removing a train unlinks its node, and with it the only reference to the
// train's manifest. Loads go through the roster so capacity is checked
// before the manifest is touched.
package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/trainyard/internal/manifest"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// trainNode is one train and the manifest it owns.
type trainNode struct {
	id       string
	name     string
	capacity int
	cargo    *manifest.Manifest
	next     *trainNode
}

// Summary is a read-only snapshot of one train for display.
type Summary struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Capacity int           `json:"capacity"`
	Weight   int           `json:"weight"`
	Count    int           `json:"count"`
	Cargo    []types.Cargo `json:"cargo"`
}

// Roster is the fleet of trains.
type Roster struct {
	head     *trainNode
	size     int
	listener types.Listener
}

// Option configures a Roster.
type Option func(*Roster)

// WithListener routes roster and manifest events to l.
func WithListener(l types.Listener) Option {
	return func(r *Roster) { r.listener = l }
}

// New returns an empty roster.
func New(opts ...Option) *Roster {
	r := &Roster{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the number of trains.
func (r *Roster) Len() int { return r.size }

// AddTrain appends a train with an empty manifest at the tail. Returns
// ErrDuplicateID if id is already on the roster.
func (r *Roster) AddTrain(id, name string, capacity int) error {
	if id == "" {
		return fmt.Errorf("train id: %w", types.ErrInvalidName)
	}
	if capacity <= 0 {
		return fmt.Errorf("train %s capacity %d: %w", id, capacity, types.ErrInvalidCapacity)
	}

	n := &trainNode{
		id:       id,
		name:     name,
		capacity: capacity,
		cargo:    manifest.New(manifest.WithOwner(id), manifest.WithListener(r.listener)),
	}

	if r.head == nil {
		r.head = n
	} else {
		cur := r.head
		for {
			if cur.id == id {
				return fmt.Errorf("train %s: %w", id, types.ErrDuplicateID)
			}
			if cur.next == nil {
				break
			}
			cur = cur.next
		}
		cur.next = n
	}
	r.size++
	r.emit(types.EventTrainAdded, id, fmt.Sprintf("%s (max %d tons)", name, capacity))
	return nil
}

// RemoveTrain unlinks the train with the given id, dropping its manifest,
// and returns its final summary. Returns ErrNotFound if id is absent.
func (r *Roster) RemoveTrain(id string) (Summary, error) {
	var prev *trainNode
	for cur := r.head; cur != nil; prev, cur = cur, cur.next {
		if cur.id != id {
			continue
		}
		if prev == nil {
			r.head = cur.next
		} else {
			prev.next = cur.next
		}
		cur.next = nil
		r.size--

		s := cur.summary()
		cur.cargo = nil
		r.emit(types.EventTrainRemoved, id, s.Name)
		return s, nil
	}
	return Summary{}, fmt.Errorf("train %s: %w", id, types.ErrNotFound)
}

// LoadCargo loads c onto the train with the given id. The load is refused
// with a *types.CapacityError when the new total would exceed the train's
// capacity; the manifest is then unchanged.
func (r *Roster) LoadCargo(trainID string, c types.Cargo) error {
	if err := c.Validate(); err != nil {
		return err
	}
	t, err := r.findTrain(trainID)
	if err != nil {
		return err
	}
	attempted := t.cargo.TotalWeight() + c.Weight
	if attempted > t.capacity {
		return &types.CapacityError{
			TrainID:   trainID,
			Cargo:     c.Name,
			Attempted: attempted,
			Max:       t.capacity,
		}
	}
	t.cargo.Load(c)
	return nil
}

// UnloadCargo removes the first cargo named name from the train's manifest.
func (r *Roster) UnloadCargo(trainID, name string) (types.Cargo, error) {
	t, err := r.findTrain(trainID)
	if err != nil {
		return types.Cargo{}, err
	}
	c, err := t.cargo.Unload(name)
	if err != nil {
		return types.Cargo{}, fmt.Errorf("train %s: %w", trainID, err)
	}
	return c, nil
}

// TotalWeight returns the current cargo weight of one train.
func (r *Roster) TotalWeight(trainID string) (int, error) {
	t, err := r.findTrain(trainID)
	if err != nil {
		return 0, err
	}
	return t.cargo.TotalWeight(), nil
}

// CargoCount returns the number of cargo items across the whole fleet.
func (r *Roster) CargoCount() int {
	total := 0
	for cur := r.head; cur != nil; cur = cur.next {
		total += cur.cargo.Count()
	}
	return total
}

// Train returns the summary of one train.
func (r *Roster) Train(id string) (Summary, error) {
	t, err := r.findTrain(id)
	if err != nil {
		return Summary{}, err
	}
	return t.summary(), nil
}

// Trains returns a summary of every train in roster order.
func (r *Roster) Trains() []Summary {
	out := make([]Summary, 0, r.size)
	for cur := r.head; cur != nil; cur = cur.next {
		out = append(out, cur.summary())
	}
	return out
}

// findTrain scans the roster front to back.
func (r *Roster) findTrain(id string) (*trainNode, error) {
	for cur := r.head; cur != nil; cur = cur.next {
		if cur.id == id {
			return cur, nil
		}
	}
	return nil, fmt.Errorf("train %s: %w", id, types.ErrNotFound)
}

func (n *trainNode) summary() Summary {
	return Summary{
		ID:       n.id,
		Name:     n.name,
		Capacity: n.capacity,
		Weight:   n.cargo.TotalWeight(),
		Count:    n.cargo.Count(),
		Cargo:    n.cargo.Items(),
	}
}

func (r *Roster) emit(kind, subject, detail string) {
	if r.listener == nil {
		return
	}
	r.listener.Notify(types.Event{
		Kind:      kind,
		Structure: types.StructureFleet,
		Subject:   subject,
		Detail:    detail,
	})
}
