/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/outing-grouper/announce"
	"github.com/mikeb26/outing-grouper/report"
	"github.com/mikeb26/outing-grouper/s3store"
)

type publishTargets struct {
	bucket  string
	webhook string
}

// publish shares a written report with every configured target. The report
// already exists locally, so failures are logged rather than fatal.
func publish(ctx context.Context, targets publishTargets, path string,
	o *outing) {

	var g errgroup.Group

	if targets.bucket != "" {
		g.Go(func() error {
			loc, err := uploadReport(ctx, targets.bucket, path, o)
			if err != nil {
				log.Printf("outingtd.publish: s3 upload failed: %v", err)
				return nil
			}
			fmt.Printf("Uploaded report to %v\n", loc)
			return nil
		})
	}
	if targets.webhook != "" {
		g.Go(func() error {
			err := announceReport(targets.webhook, o)
			if err != nil {
				log.Printf("outingtd.publish: discord announcement failed: %v", err)
				return nil
			}
			fmt.Printf("Announced groups on discord\n")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("outingtd.publish: %v", err)
	}
}

func announceReport(webhook string, o *outing) error {
	d, err := announce.NewDiscord(webhook)
	if err != nil {
		return err
	}

	return d.Announce(o.title, report.BuildTableOutput(o.report, ""))
}

func uploadReport(ctx context.Context, bucket string, path string,
	o *outing) (string, error) {

	store := s3store.New(ctx, bucket, false, true)
	if err := store.Init(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("unable to open report: %w", err)
	}
	defer f.Close()

	return store.PutArtifact(ctx, s3store.ArtifactKey(o.eventDate, path),
		report.ContentType(path), f)
}
