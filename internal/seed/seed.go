// Package seed populates empty containers with the sample data each shell
// starts from. It is called once by the entry point; nothing here is global
// mutable state.
package seed

import (
	"fmt"

	"github.com/mesh-intelligence/trainyard/internal/fleet"
	"github.com/mesh-intelligence/trainyard/internal/playlist"
	"github.com/mesh-intelligence/trainyard/internal/route"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// sampleTrain describes a train and the cargo loaded onto it at startup.
type sampleTrain struct {
	id       string
	name     string
	capacity int
	cargo    []types.Cargo
}

// sampleTrains are loaded in order; every manifest fits its capacity.
var sampleTrains = []sampleTrain{
	{
		id:       "T-01",
		name:     "Iron Horse",
		capacity: 500,
		cargo: []types.Cargo{
			{Name: "Steel Beams", Category: "Industrial", Weight: 120},
			{Name: "Lumber", Category: "Raw Material", Weight: 80},
		},
	},
	{
		id:       "T-02",
		name:     "Silver Arrow",
		capacity: 300,
		cargo: []types.Cargo{
			{Name: "Grain", Category: "Agriculture", Weight: 150},
			{Name: "Medical Supplies", Category: "Priority", Weight: 25},
			{Name: "Mail", Category: "Parcel", Weight: 10},
		},
	},
	{
		id:       "T-03",
		name:     "Night Owl",
		capacity: 400,
	},
}

// sampleStations form the route loop, head first.
var sampleStations = []string{
	"Central Depot",
	"Riverside Junction",
	"Hilltop Yard",
	"Harbor Terminal",
}

// sampleTracks are appended in order; the first becomes current.
var sampleTracks = []types.Track{
	{Title: "Blinding Lights", Artist: "The Weeknd", DurationSeconds: 200},
	{Title: "As It Was", Artist: "Harry Styles", DurationSeconds: 167},
	{Title: "Heat Waves", Artist: "Glass Animals", DurationSeconds: 238},
}

// Fleet adds the sample trains and their cargo to r.
func Fleet(r *fleet.Roster) error {
	for _, st := range sampleTrains {
		if err := r.AddTrain(st.id, st.name, st.capacity); err != nil {
			return fmt.Errorf("seed train %s: %w", st.id, err)
		}
		for _, c := range st.cargo {
			if err := r.LoadCargo(st.id, c); err != nil {
				return fmt.Errorf("seed cargo %q on %s: %w", c.Name, st.id, err)
			}
		}
	}
	return nil
}

// Route adds the sample stations to lp.
func Route(lp *route.Loop) error {
	for _, name := range sampleStations {
		if err := lp.AddStation(name); err != nil {
			return fmt.Errorf("seed station %q: %w", name, err)
		}
	}
	return nil
}

// Playlist adds the sample tracks to p.
func Playlist(p *playlist.Playlist) error {
	for _, t := range sampleTracks {
		if err := p.AddTrack(t); err != nil {
			return fmt.Errorf("seed track %q: %w", t.Title, err)
		}
	}
	return nil
}
