/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	ColumnPlayerID = "PlayerID"
	ColumnHandicap = "Handicap"

	DefaultPreferenceSlots  = 8
	DefaultPreferencePrefix = "Preferencia"
)

// Options controls how roster columns are recognized.
type Options struct {
	// PreferenceSlots is the number of preference columns to look for.
	PreferenceSlots int
	// PreferencePrefix names the preference columns; slot i is read from
	// column PreferencePrefix+i (1-based).
	PreferencePrefix string
}

func (o Options) withDefaults() Options {
	if o.PreferenceSlots <= 0 {
		o.PreferenceSlots = DefaultPreferenceSlots
	}
	if strings.TrimSpace(o.PreferencePrefix) == "" {
		o.PreferencePrefix = DefaultPreferencePrefix
	}

	return o
}

// Registry holds every player of a run in input order. It is read-only once
// built.
type Registry struct {
	players []Player
	index   map[PlayerID]int
}

// NewRegistry builds a Registry from players, rejecting empty and repeated
// ids.
func NewRegistry(players []Player) (*Registry, error) {
	reg := &Registry{
		players: make([]Player, 0, len(players)),
		index:   make(map[PlayerID]int, len(players)),
	}
	for _, p := range players {
		if err := reg.add(0, p); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func (r *Registry) add(line int, p Player) error {
	if p.ID == "" {
		return &MalformedRecordError{Line: line, Field: ColumnPlayerID,
			Reason: "missing"}
	}
	if _, dup := r.index[p.ID]; dup {
		return &MalformedRecordError{Line: line, Field: ColumnPlayerID,
			Value: string(p.ID), Reason: "duplicate player"}
	}
	r.index[p.ID] = len(r.players)
	r.players = append(r.players, p.Clone())

	return nil
}

// Players returns a copy of the registered players in input order.
func (r *Registry) Players() []Player {
	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = p.Clone()
	}

	return out
}

func (r *Registry) Lookup(id PlayerID) (Player, bool) {
	i, ok := r.index[id]
	if !ok {
		return Player{}, false
	}

	return r.players[i].Clone(), true
}

func (r *Registry) Len() int { return len(r.players) }

// columns maps roster fields to their cell positions; -1 marks an absent
// preference column.
type columns struct {
	id       int
	handicap int
	prefs    []int
}

func mapColumns(header []string, opts Options) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := pos[key]; !seen {
			pos[key] = i
		}
	}
	find := func(name string) int {
		if i, ok := pos[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	cols := columns{
		id:       find(ColumnPlayerID),
		handicap: find(ColumnHandicap),
		prefs:    make([]int, opts.PreferenceSlots),
	}
	if cols.id < 0 {
		return cols, &MalformedRecordError{Line: 1, Field: ColumnPlayerID,
			Reason: "column not found in header"}
	}
	if cols.handicap < 0 {
		return cols, &MalformedRecordError{Line: 1, Field: ColumnHandicap,
			Reason: "column not found in header"}
	}
	for i := range cols.prefs {
		cols.prefs[i] = find(fmt.Sprintf("%s%d", opts.PreferencePrefix, i+1))
	}

	return cols, nil
}

func parseRecord(line int, cells []string, cols columns) (Player, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	var p Player
	p.ID = canonicalID(cell(cols.id))
	if p.ID == "" {
		return p, &MalformedRecordError{Line: line, Field: ColumnPlayerID,
			Reason: "missing"}
	}

	rawHcp := cell(cols.handicap)
	if rawHcp == "" {
		return p, &MalformedRecordError{Line: line, Field: ColumnHandicap,
			Reason: "missing for player " + string(p.ID)}
	}
	hcp, err := strconv.ParseFloat(rawHcp, 64)
	if err != nil || math.IsNaN(hcp) || math.IsInf(hcp, 0) {
		return p, &MalformedRecordError{Line: line, Field: ColumnHandicap,
			Value: rawHcp, Reason: "not a number"}
	}
	p.Handicap = hcp

	for _, idx := range cols.prefs {
		if pref := canonicalID(cell(idx)); pref != "" {
			p.Preferences = append(p.Preferences, pref)
		}
	}

	return p, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
