/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package grouping

import (
	"github.com/mikeb26/outing-grouper/roster"
)

// GroupByPreference builds groups from mutual preferences only.
//
// Players are taken in input order. Each ungrouped player becomes the
// requester of a new group and walks its own preference list in order; a
// preferred player joins when it is still ungrouped and lists the requester
// in return. The first such match wins. A group stops growing at
// MaxGroupSize or when the requester's list is exhausted, so every player
// ends up in exactly one group of size 1 to MaxGroupSize. The result depends
// on input order.
func GroupByPreference(players []roster.Player) []Group {
	taken := make([]bool, len(players))

	// positions of each id in pool order; ids are normally unique but a
	// caller-built slice might repeat one
	positions := make(map[roster.PlayerID][]int, len(players))
	for i, p := range players {
		positions[p.ID] = append(positions[p.ID], i)
	}

	var groups []Group
	for cursor := range players {
		if taken[cursor] {
			continue
		}
		taken[cursor] = true
		requester := players[cursor]
		group := newGroup(requester.Clone())

		for _, want := range requester.Preferences {
			if group.Len() >= MaxGroupSize {
				break
			}
			for _, pos := range positions[want] {
				if taken[pos] || !players[pos].Prefers(requester.ID) {
					continue
				}
				taken[pos] = true
				group.Members = append(group.Members, players[pos].Clone())
				break
			}
		}

		groups = append(groups, group)
	}

	return groups
}
