package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ListTokenBudget is the output budget for outline and insight requests.
const ListTokenBudget = 500

var listItemPrefix = regexp.MustCompile(`^[-*•\d.\s]+`)

// BuildOutlinePrompt asks for a section outline of the content described by
// req.
func BuildOutlinePrompt(req GenerationRequest) string {
	req = req.WithDefaults()
	return fmt.Sprintf(`You are an expert content strategist. Create clear, logical outlines for content.

Create a detailed outline for %s content based on this meeting transcript:

%s

Return the outline as a JSON array of section headings, for example:
["Introduction", "Main Point 1", "Main Point 2", "Conclusion"]
`, contentTypeLabel(req.ContentType), req.Transcript)
}

// BuildInsightsPrompt asks for the key insights of a transcript.
func BuildInsightsPrompt(transcript string) string {
	return fmt.Sprintf(`You are an expert analyst who extracts key insights and actionable points from meeting transcripts.

Extract the key insights, decisions and action items from this meeting transcript:

%s

Return the insights as a JSON array of short strings.
`, transcript)
}

// ParseList reads a list of items from provider text. A JSON array of
// strings is preferred; otherwise every non-empty line becomes an item with
// its bullet or numbering stripped.
func ParseList(raw string) []string {
	if items, ok := listFromJSON(raw); ok {
		return items
	}
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(listItemPrefix.ReplaceAllString(line, ""))
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		items = append(items, line)
	}
	return cleanList(items)
}

func listFromJSON(raw string) ([]string, bool) {
	span, ok := balancedSpan(raw, '[', ']')
	if !ok {
		return nil, false
	}
	var items stringList
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, false
	}
	out := cleanList(items)
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
