// Package transcript derives lightweight meeting metadata from raw
// transcript text.
package transcript

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// MaxTopics caps the result of ExtractTopics.
const MaxTopics = 5

var knownTopics = []string{
	"product", "development", "marketing", "sales", "finance", "hr", "operations",
	"technology", "strategy", "planning", "review", "budget", "timeline", "goals",
}

var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:need to|have to|should|must|will)\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?im)(?:action item|todo|task):\s*(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?im)(?:assign|delegate)\s+(.+?)\s+to\s+(.+?)(?:\.|$)`),
}

// ExtractTopics returns up to MaxTopics known business topics ordered by how
// many words of the transcript mention them. Ties keep the known-topic order.
func ExtractTopics(text string) []string {
	words := strings.Fields(strings.ToLower(text))

	type topicCount struct {
		topic string
		count int
	}
	var counts []topicCount
	for _, topic := range knownTopics {
		n := 0
		for _, w := range words {
			if strings.Contains(w, topic) {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, topicCount{topic, n})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

	if len(counts) > MaxTopics {
		counts = counts[:MaxTopics]
	}
	topics := make([]string, 0, len(counts))
	for _, c := range counts {
		topics = append(topics, c.topic)
	}
	return topics
}

// ExtractActionItems returns the sentences that read like commitments or
// assignments, deduplicated in order of first appearance.
func ExtractActionItems(text string) []string {
	seen := map[string]struct{}{}
	items := []string{}
	for _, re := range actionPatterns {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			items = append(items, m)
		}
	}
	return items
}

// FormatDuration renders seconds as "1h 5m" or "42m".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
