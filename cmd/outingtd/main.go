/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mikeb26/outing-grouper/grouping"
	"github.com/mikeb26/outing-grouper/internal"
	"github.com/mikeb26/outing-grouper/report"
	"github.com/mikeb26/outing-grouper/roster"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":  handleHelp,
	"group": handleGroup,
	"show":  handleShow,
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// loadConfig reads environment defaults for the commands that run the
// pipeline.
func loadConfig() internal.Config {
	cfg, err := internal.ConfigFromEnv()
	if err != nil {
		log.Fatalf("outingtd: %v", err)
	}

	return cfg
}

// inputFlags are shared by every command that runs the grouping pipeline.
type inputFlags struct {
	in     *string
	slots  *int
	prefix *string
	strict *bool
	title  *string
	date   *string
}

func addInputFlags(fs *flag.FlagSet, cfg internal.Config) inputFlags {
	slots := cfg.PreferenceSlots
	if slots == 0 {
		slots = roster.DefaultPreferenceSlots
	}

	return inputFlags{
		in:     fs.String("in", internal.DefaultInputPath, "Roster CSV file or http(s) URL"),
		slots:  fs.Int("slots", slots, "Number of preference columns"),
		prefix: fs.String("prefix", roster.DefaultPreferencePrefix, "Preference column prefix"),
		strict: fs.Bool("strict", false, "Fail rather than emit a group of one"),
		title:  fs.String("title", "Groups", "Event name for report titles"),
		date:   fs.String("date", "", "Event date"),
	}
}

// outing is the result of one pipeline run.
type outing struct {
	title     string
	eventDate time.Time
	result    *grouping.Result
	report    report.Report
}

func runPipeline(ctx context.Context, cfg internal.Config,
	in inputFlags) (*outing, error) {

	if *in.slots <= 0 {
		return nil, fmt.Errorf("--slots must be positive, got %d", *in.slots)
	}
	eventDate, err := internal.ParseDateOrZero(*in.date)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q: %w", *in.date, err)
	}

	var client *http.Client
	if roster.IsURL(*in.in) {
		client = internal.NewCachedHttpClient(ctx, cfg.CacheBucket, time.Hour)
	}
	reg, err := roster.LoadSource(ctx, client, *in.in, roster.Options{
		PreferenceSlots:  *in.slots,
		PreferencePrefix: *in.prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load roster %v: %w", *in.in, err)
	}

	res, err := grouping.Build(reg, grouping.Options{StrictMerge: *in.strict})
	if err != nil {
		return nil, err
	}
	for _, id := range res.Fallback {
		log.Printf("outingtd: warning player %v could not be placed with anyone", id)
	}

	return &outing{
		title:     internal.EventTitle(*in.title, eventDate),
		eventDate: eventDate,
		result:    res,
		report:    report.Build(res.Groups),
	}, nil
}

func handleGroup(ctx context.Context, args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("group", flag.ExitOnError)
	in := addInputFlags(fs, cfg)
	out := fs.String("out", internal.DefaultOutputPath, "Report file (.xlsx or .csv)")
	bucket := fs.String("s3bucket", cfg.ArtifactBucket, "S3 bucket to upload the report to")
	webhook := fs.String("discord-webhook", cfg.DiscordWebhook, "Discord webhook URL to post the groups to")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if err := report.CheckFormat(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Please provide a valid --out file: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	o, err := runPipeline(ctx, cfg, in)
	if err != nil {
		log.Fatalf("Error building groups: %v", err)
	}
	if err := report.WriteFile(*out, o.report); err != nil {
		log.Fatalf("Error writing %v: %v", *out, err)
	}
	fmt.Printf("%v groups of %v players saved to %s, sorted by average handicap.\n",
		len(o.report.Groups), len(o.report.Rows), *out)

	publish(ctx, publishTargets{bucket: *bucket, webhook: *webhook}, *out, o)
}

func handleShow(ctx context.Context, args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	in := addInputFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	o, err := runPipeline(ctx, cfg, in)
	if err != nil {
		log.Fatalf("Error building groups: %v", err)
	}

	fmt.Print(report.BuildTableOutput(o.report, o.title))
}
