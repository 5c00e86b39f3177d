/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadHTML reads a roster from the first table in an HTML document whose
// header row names a PlayerID column, e.g. a club's published registration
// list. Rows are read in document order.
func LoadHTML(r io.Reader, opts Options) (*Registry, error) {
	opts = opts.withDefaults()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("roster.loadhtml: unable to parse document: %w",
			err)
	}

	var (
		reg      *Registry
		parseErr error
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		headerIdx := -1
		var cols columns
		rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
			ths := row.Find("th")
			if ths.Length() == 0 {
				return true
			}
			c, err := mapColumns(cellTexts(ths), opts)
			if err == nil {
				headerIdx = i
				cols = c
			}
			return false
		})
		if headerIdx < 0 {
			return true
		}

		reg = &Registry{index: make(map[PlayerID]int)}
		rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
			if i <= headerIdx {
				return true
			}
			tds := row.Find("td")
			if tds.Length() == 0 {
				return true
			}
			cells := cellTexts(tds)
			if isBlank(cells) {
				return true
			}
			// the header is line 1 of the table
			line := i - headerIdx + 1
			p, err := parseRecord(line, cells, cols)
			if err == nil {
				err = reg.add(line, p)
			}
			if err != nil {
				parseErr = err
				return false
			}
			return true
		})

		return false
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if reg == nil {
		return nil, &MalformedRecordError{Field: ColumnPlayerID,
			Reason: "no roster table found in document"}
	}

	return reg, nil
}

func cellTexts(s *goquery.Selection) []string {
	out := make([]string, 0, s.Length())
	s.Each(func(_ int, c *goquery.Selection) {
		out = append(out, strings.TrimSpace(c.Text()))
	})

	return out
}
