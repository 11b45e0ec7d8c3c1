package types

import (
	"fmt"
	"math"
)

// Track is one entry of a play sequence. Title identifies the track inside
// the sequence.
type Track struct {
	Title           string `json:"title" yaml:"title"`
	Artist          string `json:"artist" yaml:"artist"`
	DurationSeconds int    `json:"duration_seconds" yaml:"duration_seconds"`
}

// NewTrack builds a track from a minutes/seconds pair as entered at the
// playlist shell.
func NewTrack(title, artist string, minutes, seconds int) (Track, error) {
	if minutes < 0 || seconds < 0 {
		return Track{}, fmt.Errorf("duration %d:%d: %w", minutes, seconds, ErrInvalidDuration)
	}
	if minutes > (math.MaxInt-seconds)/60 {
		return Track{}, fmt.Errorf("duration %d:%d is too long: %w", minutes, seconds, ErrInvalidDuration)
	}
	t := Track{Title: title, Artist: artist, DurationSeconds: minutes*60 + seconds}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	return t, nil
}

// Validate checks that the track has a title and a non-negative duration.
func (t Track) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("track title: %w", ErrInvalidName)
	}
	if t.DurationSeconds < 0 {
		return fmt.Errorf("track %q duration %d: %w", t.Title, t.DurationSeconds, ErrInvalidDuration)
	}
	return nil
}

// Duration formats the track length as minutes:seconds with zero-padded
// seconds, e.g. 3:20 or 2:47.
func (t Track) Duration() string {
	return fmt.Sprintf("%d:%02d", t.DurationSeconds/60, t.DurationSeconds%60)
}
