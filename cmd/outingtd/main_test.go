/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mikeb26/outing-grouper/grouping"
	"github.com/mikeb26/outing-grouper/internal"
	"github.com/mikeb26/outing-grouper/report"
	"github.com/mikeb26/outing-grouper/roster"
)

const testRoster = `PlayerID,Handicap,Preferencia1,Preferencia2,Preferencia3,Preferencia4,Preferencia5,Preferencia6,Preferencia7,Preferencia8
1,10.0,2,3,,,,,,
2,12.0,1,,,,,,,
3,8.5,1,,,,,,,
4,20.0,,,,,,,,
5,3.0,6,,,,,,,
6,4.0,5,,,,,,,
7,15.0,,,,,,,,
`

func parseInputFlags(t *testing.T, args ...string) inputFlags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	in := addInputFlags(fs, internal.Config{})
	if err := fs.Parse(args); err != nil {
		t.Fatalf("unable to parse flags %v: %v", args, err)
	}
	return in
}

func writeRoster(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unable to write roster: %v", err)
	}
	return path
}

func TestRunPipeline(t *testing.T) {
	path := writeRoster(t, testRoster)
	in := parseInputFlags(t, "--in", path, "--title", "Fall Outing",
		"--date", "2026-10-19")

	o, err := runPipeline(context.Background(), internal.Config{}, in)
	if err != nil {
		t.Fatalf("runPipeline returned error: %v", err)
	}
	if o.title != "Fall Outing (2026-10-19)" {
		t.Errorf("title = %q", o.title)
	}
	if !o.eventDate.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("eventDate = %v", o.eventDate)
	}
	// {1,2,3} is settled; 4,5,6,7 are repacked into one group of four
	if len(o.report.Rows) != 7 {
		t.Errorf("expected 7 rows, got %d", len(o.report.Rows))
	}
	if len(o.report.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(o.report.Groups))
	}
	if o.report.Groups[0].Members[0].ID != "1" {
		t.Errorf("expected the {1,2,3} group (avg 10.17) first, got %v",
			o.report.Groups[0].Members)
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "groups.csv")
	if err := report.WriteFile(out, o.report); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("unable to read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "Group N,Player,Handicap,Avg Handicap Group\n1,1,10,10.17\n") {
		t.Errorf("unexpected report:\n%s", data)
	}

	// no targets configured: nothing to do
	publish(context.Background(), publishTargets{}, out, o)
}

func TestRunPipelineErrors(t *testing.T) {
	ctx := context.Background()

	malformed := writeRoster(t, "PlayerID,Handicap\n1,low\n")
	_, err := runPipeline(ctx, internal.Config{}, parseInputFlags(t, "--in", malformed))
	if !errors.Is(err, roster.ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}

	five := writeRoster(t, "PlayerID,Handicap\n1,1\n2,2\n3,3\n4,4\n5,5\n")
	_, err = runPipeline(ctx, internal.Config{},
		parseInputFlags(t, "--in", five, "--strict"))
	if !errors.Is(err, grouping.ErrUnresolvableMerge) {
		t.Errorf("expected ErrUnresolvableMerge, got %v", err)
	}
	o, err := runPipeline(ctx, internal.Config{}, parseInputFlags(t, "--in", five))
	if err != nil {
		t.Fatalf("non-strict run failed: %v", err)
	}
	if len(o.result.Fallback) != 1 {
		t.Errorf("expected one fallback player, got %v", o.result.Fallback)
	}

	_, err = runPipeline(ctx, internal.Config{},
		parseInputFlags(t, "--in", five, "--date", "2026-13-45"))
	if err == nil {
		t.Errorf("expected an error for a bad --date")
	}
	_, err = runPipeline(ctx, internal.Config{},
		parseInputFlags(t, "--in", five, "--slots", "0"))
	if err == nil {
		t.Errorf("expected an error for --slots 0")
	}
	_, err = runPipeline(ctx, internal.Config{},
		parseInputFlags(t, "--in", filepath.Join(t.TempDir(), "missing.csv")))
	if err == nil {
		t.Errorf("expected an error for a missing roster")
	}
}

func TestAddInputFlagsUsesConfig(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	in := addInputFlags(fs, internal.Config{PreferenceSlots: 5})
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if *in.slots != 5 {
		t.Errorf("slots = %d; want 5", *in.slots)
	}
	if *in.in != internal.DefaultInputPath {
		t.Errorf("in = %q; want %q", *in.in, internal.DefaultInputPath)
	}
}

func TestHelpIgnoresBadConfig(t *testing.T) {
	t.Setenv("OUTING_PREFERENCE_SLOTS", "not-a-number")

	// help must not read the environment; a failed load would exit the process
	commands["help"](context.Background(), nil)
}
