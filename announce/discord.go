/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package announce

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/outing-grouper/internal"
)

// Discord posts group reports to a channel through an incoming webhook.
type Discord struct {
	session   *discordgo.Session
	webhookID string
	token     string
}

// NewDiscord returns a Discord announcer for a webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token>.
func NewDiscord(webhookURL string) (*Discord, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// webhooks authenticate with their token; no bot token is needed
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("announce.discord: failed to initialize discord client: %w", err)
	}
	session.UserAgent = internal.UserAgent

	return &Discord{session: session, webhookID: id, token: token}, nil
}

// Announce posts the text table under a bold title.
func (d *Discord) Announce(title string, table string) error {
	params := &discordgo.WebhookParams{
		Content:  BuildMessage(title, table),
		Username: "outing-grouper",
	}
	if _, err := d.session.WebhookExecute(d.webhookID, d.token, true,
		params); err != nil {
		return fmt.Errorf("announce.discord: webhook execute failed: %w", err)
	}

	return nil
}

// ParseWebhookURL extracts the webhook id and token from a Discord webhook
// URL.
func ParseWebhookURL(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("invalid discord webhook url: %w", err)
	}
	if u.Scheme != "https" {
		return "", "", fmt.Errorf("invalid discord webhook url %q: scheme must be https", raw)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}

	return "", "", fmt.Errorf("invalid discord webhook url %q: expected .../webhooks/<id>/<token>", raw)
}

// BuildMessage renders the title and table as a Discord message, keeping
// the table in a code block and within Discord's message limit.
func BuildMessage(title string, table string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	const TitleLimit = 256
	const ellipsis = "...\n"

	if t := []rune(title); len(t) > TitleLimit {
		title = string(t[:TitleLimit-3]) + "..."
	}
	head := fmt.Sprintf("**%s**\n", title)
	budget := MsgLimit - len([]rune(head)) - len([]rune("```\n```"))
	runes := []rune(table)
	if len(runes) > budget {
		table = string(runes[:budget-len(ellipsis)]) + ellipsis
	}

	return head + "```\n" + table + "```"
}
