/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"math"
	"strconv"
	"strings"
)

// PlayerID identifies a participant. It is opaque; numeric ids are kept in
// their canonical string form.
type PlayerID string

// Player is a single participant as read from the roster.
type Player struct {
	ID       PlayerID
	Handicap float64
	// Preferences lists the players this player would like to play with, in
	// the order they were given. It may contain duplicates, unknown ids or the
	// player's own id; none of those ever match.
	Preferences []PlayerID
}

// Prefers reports whether id appears anywhere in p's preference list.
func (p Player) Prefers(id PlayerID) bool {
	for _, pref := range p.Preferences {
		if pref == id {
			return true
		}
	}

	return false
}

// Clone returns a copy of p that shares no memory with it.
func (p Player) Clone() Player {
	p.Preferences = append([]PlayerID(nil), p.Preferences...)
	return p
}

func (p Player) String() string {
	return string(p.ID) + "(" + strconv.FormatFloat(p.Handicap, 'f', -1, 64) + ")"
}

// canonicalID trims s and undoes the float rendering spreadsheets apply to
// sparse numeric id columns, so that "102.0" and "102" name the same player.
func canonicalID(s string) PlayerID {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		return PlayerID(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return PlayerID(s)
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return PlayerID(s)
	}

	return PlayerID(strconv.FormatFloat(f, 'f', -1, 64))
}
