/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package grouping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mikeb26/outing-grouper/roster"
)

const (
	// MinGroupSize is the smallest group emitted except for the single
	// straggler fallback in Merge.
	MinGroupSize = 2
	// SettledSize is the size at which a group no longer needs merging.
	SettledSize  = 3
	MaxGroupSize = 4
)

// Group is an ordered party of players.
type Group struct {
	Members []roster.Player
}

func newGroup(members ...roster.Player) Group {
	return Group{Members: append([]roster.Player(nil), members...)}
}

func (g Group) Len() int { return len(g.Members) }

// Average returns the mean handicap of the group's members, or 0 for an empty
// group.
func (g Group) Average() float64 {
	if len(g.Members) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range g.Members {
		sum += m.Handicap
	}

	return sum / float64(len(g.Members))
}

func (g Group) IDs() []roster.PlayerID {
	ids := make([]roster.PlayerID, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}

	return ids
}

func (g Group) String() string {
	parts := make([]string, len(g.Members))
	for i, m := range g.Members {
		parts[i] = string(m.ID)
	}

	return "{" + strings.Join(parts, ",") + "}"
}

func (g Group) clone() Group {
	return newGroup(g.Members...)
}

var ErrUnresolvableMerge = errors.New("unresolvable merge")

// UnresolvableMergeError is returned by Merge in strict mode when a single
// leftover player has no group of three to join.
type UnresolvableMergeError struct {
	Player roster.PlayerID
}

func (e *UnresolvableMergeError) Error() string {
	return fmt.Sprintf("player %v cannot be placed: no group of %d to absorb it",
		e.Player, SettledSize)
}

func (e *UnresolvableMergeError) Is(target error) bool {
	return target == ErrUnresolvableMerge
}
