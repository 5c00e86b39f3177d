/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"math"
	"sort"

	"github.com/mikeb26/outing-grouper/grouping"
	"github.com/mikeb26/outing-grouper/roster"
)

// Columns are the headers of every tabular rendering of a Report.
var Columns = []string{"Group N", "Player", "Handicap", "Avg Handicap Group"}

// Row is one player line. Group and Average are only set on the first row
// of each group.
type Row struct {
	Group    *int
	Player   roster.PlayerID
	Handicap float64
	Average  *float64
}

// Summary is a group in report order.
type Summary struct {
	Number  int
	Average float64
	Members []roster.Player
}

type Report struct {
	Groups []Summary
	Rows   []Row
}

// Build orders groups by ascending mean handicap, keeping the original order
// of groups with equal means, and flattens them into rows.
func Build(groups []grouping.Group) Report {
	summaries := make([]Summary, 0, len(groups))
	for _, g := range groups {
		if g.Len() == 0 {
			continue
		}
		summaries = append(summaries, Summary{
			Average: g.Average(),
			Members: append([]roster.Player(nil), g.Members...),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Average < summaries[j].Average
	})

	var rep Report
	for i := range summaries {
		summaries[i].Number = i + 1
		num := summaries[i].Number
		avg := Round2(summaries[i].Average)
		for j, m := range summaries[i].Members {
			row := Row{Player: m.ID, Handicap: m.Handicap}
			if j == 0 {
				row.Group = &num
				row.Average = &avg
			}
			rep.Rows = append(rep.Rows, row)
		}
	}
	rep.Groups = summaries

	return rep
}

// Round2 rounds x to two decimal places, halves going to the even digit.
func Round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
