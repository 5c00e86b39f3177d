/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mikeb26/outing-grouper/grouping"
	"github.com/mikeb26/outing-grouper/roster"
)

func group(members ...roster.Player) grouping.Group {
	return grouping.Group{Members: members}
}

func p(id string, hcp float64) roster.Player {
	return roster.Player{ID: roster.PlayerID(id), Handicap: hcp}
}

func sampleGroups() []grouping.Group {
	return []grouping.Group{
		group(p("a", 20), p("b", 10), p("c", 15)), // 15
		group(p("d", 1), p("e", 2)),               // 1.5
		group(p("f", 16), p("g", 14)),             // 15, ties with the first
		group(p("h", 3.333), p("i", 3.333), p("j", 3.335)),
	}
}

func TestBuild(t *testing.T) {
	rep := Build(sampleGroups())

	wantOrder := []roster.PlayerID{"d", "h", "a", "f"}
	if len(rep.Groups) != len(wantOrder) {
		t.Fatalf("expected %d groups, got %d", len(wantOrder), len(rep.Groups))
	}
	for i, s := range rep.Groups {
		if s.Number != i+1 {
			t.Errorf("group %d numbered %d", i, s.Number)
		}
		if s.Members[0].ID != wantOrder[i] {
			t.Errorf("group %d starts with %v; want %v", i, s.Members[0].ID,
				wantOrder[i])
		}
		if i > 0 && rep.Groups[i-1].Average > s.Average {
			t.Errorf("groups out of order at %d: %v > %v", i,
				rep.Groups[i-1].Average, s.Average)
		}
	}

	if len(rep.Rows) != 10 {
		t.Fatalf("expected one row per player (10), got %d", len(rep.Rows))
	}
	first := rep.Rows[0]
	if first.Group == nil || *first.Group != 1 || first.Average == nil ||
		*first.Average != 1.5 {
		t.Errorf("unexpected first row: %+v", first)
	}
	second := rep.Rows[1]
	if second.Group != nil || second.Average != nil {
		t.Errorf("continuation row carries group data: %+v", second)
	}
	if second.Player != "e" || second.Handicap != 2 {
		t.Errorf("unexpected continuation row: %+v", second)
	}
	// (3.333+3.333+3.335)/3 = 3.33366...
	if avg := rep.Rows[2].Average; avg == nil || *avg != 3.33 {
		t.Errorf("rounded average = %v; want 3.33", avg)
	}
}

func TestBuildEmpty(t *testing.T) {
	rep := Build(nil)
	if len(rep.Rows) != 0 || len(rep.Groups) != 0 {
		t.Errorf("expected an empty report, got %+v", rep)
	}
	if out := BuildTableOutput(rep, ""); !strings.Contains(out, "No players") {
		t.Errorf("unexpected empty table output %q", out)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{in: 12.345678, want: 12.35},
		{in: 7, want: 7},
		{in: 4.004, want: 4},
		{in: -1.239, want: -1.24},
		{in: 0.125, want: 0.12},
		{in: 0.375, want: 0.38},
		{in: 0.625, want: 0.62},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	rep := Build([]grouping.Group{
		group(p("a", 20), p("b", 10.5)),
		group(p("c", 1), p("d", 2), p("e", 4)),
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	want := "Group N,Player,Handicap,Avg Handicap Group\n" +
		"1,c,1,2.33\n" +
		",d,2,\n" +
		",e,4,\n" +
		"2,a,20,15.25\n" +
		",b,10.5,\n"
	if buf.String() != want {
		t.Errorf("WriteCSV =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteXLSX(t *testing.T) {
	rep := Build(sampleGroups())

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep); err != nil {
		t.Fatalf("WriteXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("unable to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(rows) != len(rep.Rows)+1 {
		t.Fatalf("expected %d rows, got %d", len(rep.Rows)+1, len(rows))
	}
	for i, c := range Columns {
		if rows[0][i] != c {
			t.Errorf("header %d = %q; want %q", i, rows[0][i], c)
		}
	}
	for i, r := range rep.Rows {
		row := rows[i+1]
		if len(row) < 3 || row[1] != string(r.Player) {
			t.Errorf("row %d = %v; want player %v", i+1, row, r.Player)
			continue
		}
		if (r.Group == nil) != (row[0] == "") {
			t.Errorf("row %d group cell %q does not match %v", i+1, row[0], r.Group)
		}
	}
	if rows[1][0] != "1" || rows[1][3] != "1.5" {
		t.Errorf("unexpected first data row %v", rows[1])
	}
}

func TestBuildTableOutput(t *testing.T) {
	rep := Build([]grouping.Group{
		group(p("alice", 20), p("bob", 10)),
		group(p("cy", 1), p("dee", 2), p("ed", 3)),
	})

	out := BuildTableOutput(rep, "Fall Outing")
	want := "Fall Outing\n\n" +
		"Group N  Player  Handicap  Avg Handicap Group\n" +
		"1        cy      1         2.00\n" +
		"         dee     2\n" +
		"         ed      3\n" +
		"\n" +
		"2        alice   20        15.00\n" +
		"         bob     10\n"
	if out != want {
		t.Errorf("BuildTableOutput =\n%s\nwant\n%s", out, want)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	rep := Build(sampleGroups())

	for _, name := range []string{"groups.csv", "groups.xlsx"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, rep); err != nil {
			t.Fatalf("WriteFile(%v) returned error: %v", name, err)
		}
		st, err := os.Stat(path)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%v not written: %v", name, err)
		}
		if perm := st.Mode().Perm(); perm != 0o644 {
			t.Errorf("%v has mode %v; want %v", name, perm, os.FileMode(0o644))
		}
	}

	bad := filepath.Join(dir, "groups.pdf")
	if err := WriteFile(bad, rep); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
	if err := CheckFormat(bad); err == nil {
		t.Errorf("CheckFormat accepted %v", bad)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected files left behind: %v", names)
	}

	if ct := ContentType("x.CSV"); ct != "text/csv" {
		t.Errorf("ContentType(x.CSV) = %q", ct)
	}
}
