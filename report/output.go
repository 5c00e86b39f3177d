/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Groups"

// BuildTableOutput formats the report into an aligned text table.
func BuildTableOutput(rep Report, title string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(title + "\n\n")
	}
	if len(rep.Rows) == 0 {
		sb.WriteString("No players to group\n")
		return sb.String()
	}

	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, textCells(r))
	}

	// Compute column widths
	widths := make([]int, len(Columns))
	for i, c := range Columns {
		widths[i] = len(c)
	}
	for _, r := range rows {
		for i, cell := range r {
			if l := len(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}
	writeLine(Columns)
	for i, r := range rows {
		// blank line between groups
		if i > 0 && rep.Rows[i].Group != nil {
			sb.WriteString("\n")
		}
		writeLine(r)
	}

	return sb.String()
}

func textCells(r Row) []string {
	cells := []string{"", string(r.Player), formatFloat(r.Handicap), ""}
	if r.Group != nil {
		cells[0] = strconv.Itoa(*r.Group)
	}
	if r.Average != nil {
		cells[3] = strconv.FormatFloat(*r.Average, 'f', 2, 64)
	}

	return cells
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteCSV writes the report as CSV with a header row. Unset group and
// average cells are left empty.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rep.Rows {
		record := []string{"", string(r.Player), formatFloat(r.Handicap), ""}
		if r.Group != nil {
			record[0] = strconv.Itoa(*r.Group)
		}
		if r.Average != nil {
			record[3] = formatFloat(*r.Average)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteXLSX writes the report as a single-sheet workbook.
func WriteXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("report.xlsx: %w", err)
	}

	setRow := func(rowNum int, values []any) error {
		for i, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := setRow(1, header); err != nil {
		return fmt.Errorf("report.xlsx: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report.xlsx: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("report.xlsx: %w", err)
	}

	for i, r := range rep.Rows {
		values := []any{nil, string(r.Player), r.Handicap, nil}
		if r.Group != nil {
			values[0] = *r.Group
		}
		if r.Average != nil {
			values[3] = *r.Average
		}
		if err := setRow(i+2, values); err != nil {
			return fmt.Errorf("report.xlsx: %w", err)
		}
	}

	return f.Write(w)
}

// WriteFile renders the report to path in the format implied by its
// extension (.xlsx or .csv). The file is written to a temporary name in the
// same directory and renamed into place, so a failed run leaves no artifact.
func WriteFile(path string, rep Report) error {
	write, err := writerFor(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".outing-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("report.writefile: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp, rep); err != nil {
		tmp.Close()
		return fmt.Errorf("report.writefile: unable to render %v: %w", path, err)
	}
	// CreateTemp makes the file owner-only
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("report.writefile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("report.writefile: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("report.writefile: %w", err)
	}

	return nil
}

// CheckFormat reports whether path has an extension WriteFile can render.
func CheckFormat(path string) error {
	_, err := writerFor(path)
	return err
}

// ContentType returns the MIME type of the artifact WriteFile produces for
// path.
func ContentType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "text/csv"
	}

	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func writerFor(path string) (func(io.Writer, Report) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX, nil
	case ".csv":
		return WriteCSV, nil
	}

	return nil, fmt.Errorf("unsupported output format %q (want .xlsx or .csv)",
		filepath.Ext(path))
}
