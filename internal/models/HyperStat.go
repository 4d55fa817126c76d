package models

import (
	"errors"
	"slices"
	"time"
)

// PresetCount is the number of hyper-stat preset slots a character has.
const PresetCount = 3

var ErrPresetIndex = errors.New("preset index out of range")

// StatEntry is one allocated hyper-stat line.
type StatEntry struct {
	StatType     string
	StatPoint    int64
	StatLevel    int64
	StatIncrease string
}

// PresetSlot is one of the three independently configurable allocations.
type PresetSlot struct {
	RemainingPoints int64
	Entries         []StatEntry
}

// StatSnapshot is a character's hyper-stat state on a given date.
// It is built once by the decoder and treated as read-only afterwards.
type StatSnapshot struct {
	Date               time.Time
	CharacterClass     string
	ActivePresetNumber string
	AvailablePoints    int64
	Presets            [PresetCount]PresetSlot
}

// Preset returns a copy of slot n, where n is 1-based.
func (s *StatSnapshot) Preset(n int) (PresetSlot, error) {
	if n < 1 || n > PresetCount {
		return PresetSlot{}, ErrPresetIndex
	}
	slot := s.Presets[n-1]
	slot.Entries = slices.Clone(slot.Entries)
	if slot.Entries == nil {
		slot.Entries = []StatEntry{}
	}
	return slot, nil
}

// Equal reports whether both snapshots describe the same instant with the
// same UTC offset and carry identical stats.
func (s *StatSnapshot) Equal(o *StatSnapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if !s.Date.Equal(o.Date) {
		return false
	}
	_, off1 := s.Date.Zone()
	_, off2 := o.Date.Zone()
	if off1 != off2 {
		return false
	}
	if s.CharacterClass != o.CharacterClass ||
		s.ActivePresetNumber != o.ActivePresetNumber ||
		s.AvailablePoints != o.AvailablePoints {
		return false
	}
	for i := range s.Presets {
		if s.Presets[i].RemainingPoints != o.Presets[i].RemainingPoints {
			return false
		}
		if !slices.Equal(s.Presets[i].Entries, o.Presets[i].Entries) {
			return false
		}
	}
	return true
}
