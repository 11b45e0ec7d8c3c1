package types

import "time"

// Structure names used on events, metrics and log fields.
const (
	StructureFleet    = "fleet"
	StructureRoute    = "route"
	StructurePlaylist = "playlist"
)

// Event kinds emitted by container mutations.
const (
	EventCargoLoaded    = "cargo.loaded"
	EventCargoUnloaded  = "cargo.unloaded"
	EventTrainAdded     = "train.added"
	EventTrainRemoved   = "train.removed"
	EventStationAdded   = "station.added"
	EventStationRemoved = "station.removed"
	EventRouteAdvanced  = "route.advanced"
	EventTrackAdded     = "track.added"
	EventTrackRemoved   = "track.removed"
	EventPlaylistMoved  = "playlist.moved"
	EventPlaylistLoop   = "playlist.loop"
)

// Event records one successful mutation. Containers fill Kind, Structure,
// Subject and Detail; the journal stamps ID, Seq and CreatedAt.
type Event struct {
	ID        string    `json:"event_id"`
	Seq       int64     `json:"seq"`
	Kind      string    `json:"kind"`
	Structure string    `json:"structure"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Listener receives events from a container. Listeners run synchronously
// inside the mutating call.
type Listener interface {
	Notify(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// Notify calls f(e).
func (f ListenerFunc) Notify(e Event) { f(e) }

// Listeners fans an event out to each non-nil listener in order.
type Listeners []Listener

// Notify forwards e to every listener.
func (ls Listeners) Notify(e Event) {
	for _, l := range ls {
		if l != nil {
			l.Notify(e)
		}
	}
}
