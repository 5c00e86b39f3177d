/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the defaults that may be supplied through the environment
// (or a .env file) instead of command line flags.
type Config struct {
	// CacheBucket is the S3 bucket backing the http cache for remote rosters.
	CacheBucket string
	// ArtifactBucket receives a copy of every report written.
	ArtifactBucket string
	// DiscordWebhook is the webhook URL results are announced to.
	DiscordWebhook string
	// PreferenceSlots overrides the number of preference columns; 0 keeps
	// the roster default.
	PreferenceSlots int
}

// ConfigFromEnv loads .env if present and reads OUTING_* variables.
func ConfigFromEnv() (Config, error) {
	// a missing .env is not an error
	_ = godotenv.Load()

	cfg := Config{
		CacheBucket:    strings.TrimSpace(os.Getenv("OUTING_CACHE_BUCKET")),
		ArtifactBucket: strings.TrimSpace(os.Getenv("OUTING_S3_BUCKET")),
		DiscordWebhook: strings.TrimSpace(os.Getenv("OUTING_DISCORD_WEBHOOK")),
	}

	if s := strings.TrimSpace(os.Getenv("OUTING_PREFERENCE_SLOTS")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("invalid OUTING_PREFERENCE_SLOTS %q: %w", s, err)
		}
		if n <= 0 {
			return cfg, fmt.Errorf("OUTING_PREFERENCE_SLOTS must be positive, got %d", n)
		}
		cfg.PreferenceSlots = n
	}

	return cfg, nil
}
