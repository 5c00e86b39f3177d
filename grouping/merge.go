/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package grouping

import (
	"log"

	"github.com/mikeb26/outing-grouper/roster"
)

// Options controls the merge pass.
type Options struct {
	// StrictMerge makes Merge fail with an UnresolvableMergeError instead of
	// emitting a lone player as a group of one.
	StrictMerge bool
}

// Merge repartitions preference groups so that every emitted group has
// between MinGroupSize and MaxGroupSize members.
//
// Groups of SettledSize or more are kept. Members of smaller groups become
// stragglers and are packed, in order, into new groups of four (three when
// only three are left). A final pair is kept as a pair; a final single player
// joins the first group of three. Pairs are then combined two at a time into
// groups of four; a lone remaining pair takes the last member of the first
// group of four.
//
// When a single straggler has no group of three to join it is emitted alone,
// or rejected when opts.StrictMerge is set.
func Merge(groups []Group, opts Options) ([]Group, error) {
	settled, err := packStragglers(groups, opts)
	if err != nil {
		return nil, err
	}

	return combinePairs(settled), nil
}

// packStragglers keeps groups of SettledSize or more and repacks the members
// of every smaller group.
func packStragglers(groups []Group, opts Options) ([]Group, error) {
	var settled []Group
	var stragglers []roster.Player
	for _, g := range groups {
		if g.Len() >= SettledSize {
			settled = append(settled, g.clone())
		} else {
			stragglers = append(stragglers, g.Members...)
		}
	}

	next := 0
	for next < len(stragglers) {
		remaining := len(stragglers) - next
		switch {
		case remaining == 1:
			lone := stragglers[next]
			next++
			if i := firstOfSize(settled, SettledSize); i >= 0 {
				settled[i].Members = append(settled[i].Members, lone)
				break
			}
			if opts.StrictMerge {
				return nil, &UnresolvableMergeError{Player: lone.ID}
			}
			log.Printf("grouping.merge: warning no group of %v can absorb %v; leaving it alone",
				SettledSize, lone.ID)
			settled = append(settled, newGroup(lone))
		case remaining == MinGroupSize:
			settled = append(settled, newGroup(stragglers[next:]...))
			next = len(stragglers)
		default:
			size := min(remaining, MaxGroupSize)
			settled = append(settled, newGroup(stragglers[next:next+size]...))
			next += size
		}
	}

	return settled, nil
}

// combinePairs pulls every pair out of groups and merges them two at a time,
// most recent first. A lone leftover pair borrows the last member of the
// first group of four, or stays a pair if there is none.
func combinePairs(groups []Group) []Group {
	final := make([]Group, 0, len(groups))
	var pairs []Group
	for _, g := range groups {
		if g.Len() == MinGroupSize {
			pairs = append(pairs, g)
		} else {
			final = append(final, g)
		}
	}

	for len(pairs) > 1 {
		n := len(pairs)
		last, prev := pairs[n-1], pairs[n-2]
		pairs = pairs[:n-2]
		merged := newGroup(last.Members...)
		merged.Members = append(merged.Members, prev.Members...)
		final = append(final, merged)
	}

	if len(pairs) == 1 {
		pair := pairs[0].clone()
		if i := firstOfSize(final, MaxGroupSize); i >= 0 {
			donor := final[i].Members
			pair.Members = append(pair.Members, donor[len(donor)-1])
			final[i].Members = donor[:len(donor)-1]
		}
		final = append(final, pair)
	}

	return final
}

func firstOfSize(groups []Group, size int) int {
	for i, g := range groups {
		if g.Len() == size {
			return i
		}
	}

	return -1
}
