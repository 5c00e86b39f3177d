/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// EventTitle names an outing for report headers, e.g. "Member Outing
// (2026-10-19)". A zero date leaves the title undated.
func EventTitle(name string, date time.Time) string {
	if name == "" {
		name = "Groups"
	}
	if date.IsZero() {
		return name
	}

	return name + " (" + date.Format("2006-01-02") + ")"
}
