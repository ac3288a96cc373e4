package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nhle/postboard/internal/model"
)

// TimeAgo renders an ISO-8601 timestamp relative to now, e.g.
// "3 minutes ago". Unparseable input is returned as is.
func TimeAgo(iso string) string {
	return timeAgo(iso, time.Now())
}

func timeAgo(iso string, now time.Time) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Byline renders "by <author> · <time ago>".
func Byline(author, date string) string {
	if ago := TimeAgo(date); ago != "" {
		return fmt.Sprintf("by %s · %s", author, ago)
	}
	return "by " + author
}

// ReactionSummary renders every reaction with its count, e.g. "👍 2 🎉 0".
func ReactionSummary(r model.Reactions) string {
	parts := make([]string, 0, len(model.AllReactions))
	for _, kind := range model.AllReactions {
		parts = append(parts, fmt.Sprintf("%s %d", kind.Emoji(), r.Count(kind)))
	}
	return strings.Join(parts, "  ")
}
