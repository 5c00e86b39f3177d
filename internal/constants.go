/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent         = "outing-grouper/0.3.0 (+https://github.com/mikeb26/outing-grouper)"
	DefaultInputPath  = "INPUT_EXAMPLE_2_SMALL.csv"
	DefaultOutputPath = "final_groups.xlsx"
)
