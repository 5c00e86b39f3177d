/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"errors"
	"fmt"
)

var ErrMalformedRecord = errors.New("malformed roster record")

// MalformedRecordError describes a roster row (or header) that cannot be
// turned into a Player. Line is 1-based; 0 means the position is unknown.
type MalformedRecordError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("roster line %d: %s %q: %s", e.Line, e.Field,
			e.Value, e.Reason)
	}

	return fmt.Sprintf("roster: %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
