package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"hyperstat/internal/models"

	json "github.com/goccy/go-json"
)

// Offset date-time layouts accepted on the wire. The Open API emits minutes
// precision ("2024-01-09T00:00+09:00"); full RFC 3339 is accepted as well.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// HyperStatDecoder turns hyper-stat wire payloads into models.StatSnapshot
// and back. The zero value is not usable; build one with NewHyperStatDecoder.
// A decoder is immutable and safe for concurrent use.
type HyperStatDecoder struct {
	snapshot []rule[models.StatSnapshot]
	entry    []rule[models.StatEntry]
}

func NewHyperStatDecoder() *HyperStatDecoder {
	d := &HyperStatDecoder{entry: entryRules()}
	d.snapshot = snapshotRules(d.entry)
	return d
}

// Decode parses body. Every failure is returned as *DecodeError.
func (d *HyperStatDecoder) Decode(body []byte) (*models.StatSnapshot, error) {
	var s models.StatSnapshot
	if err := decodeObject(body, d.snapshot, &s); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, &DecodeError{Err: err}
	}
	for i := range s.Presets {
		if s.Presets[i].Entries == nil {
			s.Presets[i].Entries = []models.StatEntry{}
		}
	}
	return &s, nil
}

// Encode renders s in the wire convention, the inverse of Decode.
func (d *HyperStatDecoder) Encode(s *models.StatSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeObject(&buf, d.snapshot, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Mapping lists the snapshot-level wire keys followed by the preset entry keys.
func (d *HyperStatDecoder) Mapping() (snapshot []FieldMapping, entry []FieldMapping) {
	return mappings(d.snapshot), mappings(d.entry)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTimestampFormat, s)
}

func snapshotRules(entry []rule[models.StatEntry]) []rule[models.StatSnapshot] {
	rules := []rule[models.StatSnapshot]{
		auto("date", true,
			func(raw json.RawMessage, s *models.StatSnapshot) error {
				var v string
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("%w: %v", ErrTimestampFormat, err)
				}
				t, err := parseTimestamp(v)
				if err != nil {
					return err
				}
				s.Date = t
				return nil
			},
			func(s *models.StatSnapshot) (any, error) { return s.Date.Format(time.RFC3339Nano), nil }),
		auto("character_class", true,
			func(raw json.RawMessage, s *models.StatSnapshot) (err error) {
				s.CharacterClass, err = decodeString(raw)
				return err
			},
			func(s *models.StatSnapshot) (any, error) { return s.CharacterClass, nil }),
		auto("use_preset_no", false,
			func(raw json.RawMessage, s *models.StatSnapshot) (err error) {
				s.ActivePresetNumber, err = decodeString(raw)
				return err
			},
			func(s *models.StatSnapshot) (any, error) { return s.ActivePresetNumber, nil }),
		auto("use_available_hyper_stat", false,
			func(raw json.RawMessage, s *models.StatSnapshot) (err error) {
				s.AvailablePoints, err = decodeInt(raw)
				return err
			},
			func(s *models.StatSnapshot) (any, error) { return s.AvailablePoints, nil }),
	}

	for i := 0; i < models.PresetCount; i++ {
		i := i // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		prefix := "hyper_stat_preset_" + strconv.Itoa(i+1)
		rules = append(rules,
			auto(prefix+"_remain_point", false,
				func(raw json.RawMessage, s *models.StatSnapshot) (err error) {
					s.Presets[i].RemainingPoints, err = decodeInt(raw)
					return err
				},
				func(s *models.StatSnapshot) (any, error) { return s.Presets[i].RemainingPoints, nil }),
			auto(prefix, false,
				func(raw json.RawMessage, s *models.StatSnapshot) (err error) {
					s.Presets[i].Entries, err = decodeEntries(raw, entry)
					return err
				},
				func(s *models.StatSnapshot) (any, error) { return encodeEntries(s.Presets[i].Entries, entry) }),
		)
	}
	return rules
}

func entryRules() []rule[models.StatEntry] {
	return []rule[models.StatEntry]{
		auto("stat_type", false,
			func(raw json.RawMessage, e *models.StatEntry) (err error) {
				e.StatType, err = decodeString(raw)
				return err
			},
			func(e *models.StatEntry) (any, error) { return e.StatType, nil }),
		// The upstream key reads "stat_name" but carries the allocated point count.
		renamed("stat_name", "statPoint",
			func(raw json.RawMessage, e *models.StatEntry) (err error) {
				e.StatPoint, err = decodeInt(raw)
				return err
			},
			func(e *models.StatEntry) (any, error) { return e.StatPoint, nil }),
		auto("stat_level", false,
			func(raw json.RawMessage, e *models.StatEntry) (err error) {
				e.StatLevel, err = decodeInt(raw)
				return err
			},
			func(e *models.StatEntry) (any, error) { return e.StatLevel, nil }),
		auto("stat_increase", false,
			func(raw json.RawMessage, e *models.StatEntry) (err error) {
				e.StatIncrease, err = decodeString(raw)
				return err
			},
			func(e *models.StatEntry) (any, error) { return e.StatIncrease, nil }),
	}
}

func decodeEntries(raw json.RawMessage, rules []rule[models.StatEntry]) ([]models.StatEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: want array: %v", ErrFieldType, err)
	}
	entries := make([]models.StatEntry, len(items))
	for i, item := range items {
		if isNull(item) {
			continue
		}
		if err := decodeObject(item, rules, &entries[i]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return entries, nil
}

func encodeEntries(entries []models.StatEntry, rules []rule[models.StatEntry]) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeObject(&buf, rules, &entries[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
