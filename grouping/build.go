/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package grouping

import (
	"fmt"

	"github.com/mikeb26/outing-grouper/roster"
)

// Result holds the output of each grouping stage.
type Result struct {
	PreferenceGroups []Group
	Groups           []Group
	// Fallback lists players that could only be placed in a group of one.
	Fallback []roster.PlayerID
}

// Build runs the preference pass and the merge pass over every player in reg
// and checks that each player lands in exactly one final group.
func Build(reg *roster.Registry, opts Options) (*Result, error) {
	players := reg.Players()

	res := &Result{
		PreferenceGroups: GroupByPreference(players),
	}
	var err error
	res.Groups, err = Merge(res.PreferenceGroups, opts)
	if err != nil {
		return nil, fmt.Errorf("grouping.build: %w", err)
	}
	for _, g := range res.Groups {
		if g.Len() == 1 {
			res.Fallback = append(res.Fallback, g.Members[0].ID)
		}
	}

	if err := verify(players, res.Groups); err != nil {
		return nil, fmt.Errorf("grouping.build: %w", err)
	}

	return res, nil
}

func verify(players []roster.Player, groups []Group) error {
	seen := make(map[roster.PlayerID]int, len(players))
	total := 0
	for _, g := range groups {
		if g.Len() == 0 || g.Len() > MaxGroupSize {
			return fmt.Errorf("group %v has invalid size %v", g, g.Len())
		}
		for _, m := range g.Members {
			seen[m.ID]++
			total++
		}
	}
	if total != len(players) {
		return fmt.Errorf("placed %v players but registered %v", total,
			len(players))
	}
	for _, p := range players {
		if seen[p.ID] != 1 {
			return fmt.Errorf("player %v placed %v times", p.ID, seen[p.ID])
		}
	}

	return nil
}
