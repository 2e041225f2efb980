package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"content-rebirth/models"
)

const (
	placeholderTitle    = "Generated Content"
	placeholderBody     = "No content was generated."
	defaultCategory     = "General"
	metaTitleMaxLen     = 60
	metaDescriptionTmpl = "Discover insights and key takeaways from this comprehensive discussion. Learn more about %s."
)

var defaultSEOKeywords = []string{"meeting insights", "business discussion", "key takeaways"}

// draft is the partial result of one extraction strategy. Empty fields are
// filled by the completion steps in ParseGeneratedContent.
type draft struct {
	title     string
	content   string
	summary   string
	category  string
	takeaways []string
	tags      []string
	seo       *models.SEOData
	// structured is set when the text came from a JSON object; the first
	// line of raw is then JSON, not a title.
	structured bool
}

// strategy tries to extract a draft from raw provider text.
type strategy func(raw string, req GenerationRequest) (draft, bool)

// extractionChain is tried in order; the first strategy that succeeds wins.
var extractionChain = []strategy{
	fromJSONObject,
	fromSectionMarkers,
}

func firstSuccess(raw string, req GenerationRequest, chain []strategy) draft {
	for _, s := range chain {
		if d, ok := s(raw, req); ok {
			return d
		}
	}
	return draft{}
}

// ParseGeneratedContent turns free text from a provider into
// GeneratedContent. It never fails: every field missing from the provider
// output is derived from the request or synthesized, and the returned title
// and content are always non-empty.
func ParseGeneratedContent(raw string, req GenerationRequest) GeneratedContent {
	d := firstSuccess(raw, req, extractionChain)

	out := GeneratedContent{
		Title:        strings.TrimSpace(d.title),
		Content:      strings.TrimSpace(d.content),
		Summary:      strings.TrimSpace(d.summary),
		KeyTakeaways: cleanList(d.takeaways),
		Tags:         cleanList(d.tags),
		Category:     strings.TrimSpace(d.category),
	}

	if out.Title == "" && !d.structured {
		out.Title = firstTitleLine(raw)
	}
	if out.Title == "" {
		out.Title = strings.TrimSpace(req.Title)
	}
	if out.Title == "" {
		out.Title = placeholderTitle
	}

	if out.Content == "" {
		out.Content = strings.TrimSpace(raw)
	}
	if out.Content == "" {
		out.Content = placeholderBody
	}

	if len(out.Tags) == 0 {
		out.Tags = cleanList(req.Tags)
	}
	if out.Category == "" {
		out.Category = strings.TrimSpace(req.Category)
	}
	if out.Category == "" {
		out.Category = defaultCategory
	}

	if out.Summary == "" {
		out.Summary = SynthesizeSummary(out.Content)
	}
	if out.Summary == "" {
		out.Summary = out.Title
	}

	out.SEOData = completeSEO(d.seo, out.Title)
	return out
}

// SynthesizeSummary joins the first two sentences of body.
func SynthesizeSummary(body string) string {
	parts := sentenceSplitter.Split(body, -1)
	var sentences []string
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
		if len(sentences) == 2 {
			break
		}
	}
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// SynthesizeSEO derives SEO metadata from a title.
func SynthesizeSEO(title string) models.SEOData {
	return completeSEO(nil, title)
}

func completeSEO(seo *models.SEOData, title string) models.SEOData {
	var out models.SEOData
	if seo != nil {
		out = models.SEOData{
			MetaTitle:       strings.TrimSpace(seo.MetaTitle),
			MetaDescription: strings.TrimSpace(seo.MetaDescription),
			Keywords:        cleanList(seo.Keywords),
		}
	}
	lower := strings.ToLower(title)
	if out.MetaTitle == "" {
		out.MetaTitle = truncateRunes(title, metaTitleMaxLen)
	}
	if out.MetaDescription == "" {
		out.MetaDescription = fmt.Sprintf(metaDescriptionTmpl, lower)
	}
	if len(out.Keywords) == 0 {
		out.Keywords = append(append([]string{}, defaultSEOKeywords...), lower)
	}
	return out
}

// truncateRunes cuts s to n runes, ending in "..." when it was longer.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// cleanList trims entries, drops blanks and removes case-insensitive
// duplicates while keeping first-seen order.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// firstTitleLine returns the first line that is neither blank, a section
// marker, nor pure punctuation. Markdown heading hashes are dropped.
func firstTitleLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, _, ok := matchMarker(line); ok {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if !hasLetterOrDigit(line) {
			continue
		}
		return line
	}
	return ""
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// --- JSON strategy ---

type jsonPayload struct {
	Title        flexString `json:"title"`
	Content      flexText   `json:"content"`
	Summary      flexString `json:"summary"`
	KeyTakeaways stringList `json:"keyTakeaways"`
	SEOData      *struct {
		MetaTitle       flexString `json:"metaTitle"`
		MetaDescription flexString `json:"metaDescription"`
		Keywords        stringList `json:"keywords"`
	} `json:"seoData"`
	Tags     stringList `json:"tags"`
	Category flexString `json:"category"`
}

// empty reports whether none of the content fields were present.
func (p jsonPayload) empty() bool {
	return strings.TrimSpace(string(p.Title)) == "" &&
		strings.TrimSpace(string(p.Content)) == "" &&
		strings.TrimSpace(string(p.Summary)) == "" &&
		strings.TrimSpace(string(p.Category)) == "" &&
		len(cleanList(p.KeyTakeaways)) == 0 &&
		len(cleanList(p.Tags)) == 0 &&
		p.SEOData == nil
}

func fromJSONObject(raw string, req GenerationRequest) (draft, bool) {
	p, ok := firstPayload(raw)
	if !ok {
		return draft{}, false
	}

	d := draft{
		title:      string(p.Title),
		content:    string(p.Content),
		summary:    string(p.Summary),
		category:   string(p.Category),
		takeaways:  p.KeyTakeaways,
		tags:       p.Tags,
		structured: true,
	}
	if p.SEOData != nil {
		d.seo = &models.SEOData{
			MetaTitle:       string(p.SEOData.MetaTitle),
			MetaDescription: string(p.SEOData.MetaDescription),
			Keywords:        p.SEOData.Keywords,
		}
	}
	if strings.TrimSpace(d.title) == "" {
		d.title = req.Title
	}
	if len(cleanList(d.tags)) == 0 {
		d.tags = req.Tags
	}
	if strings.TrimSpace(d.category) == "" {
		d.category = req.Category
	}
	return d, true
}

// firstPayload decodes the first balanced object in raw that carries at
// least one content field.
func firstPayload(raw string) (jsonPayload, bool) {
	rest := raw
	for {
		span, ok := balancedSpan(rest, '{', '}')
		if !ok {
			return jsonPayload{}, false
		}
		var p jsonPayload
		if err := json.Unmarshal([]byte(span), &p); err == nil && !p.empty() {
			return p, true
		}
		rest = rest[strings.Index(rest, span)+len(span):]
	}
}

// balancedSpan returns the first opening...closing span in s whose delimiters
// balance, ignoring delimiters inside JSON string literals.
func balancedSpan(s string, opening, closing byte) (string, bool) {
	start := strings.IndexByte(s, opening)
	for start >= 0 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			c := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case opening:
				depth++
			case closing:
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
		next := strings.IndexByte(s[start+1:], opening)
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// stringList accepts a JSON array of strings or a single comma separated
// string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var arr []any
	if err := json.Unmarshal(b, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*l = nil
		return nil
	}
	*l = strings.Split(s, ",")
	return nil
}

// flexString accepts a string, a number or a bool. Other values decode to
// the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*f = ""
		return nil
	}
	switch x := v.(type) {
	case string:
		*f = flexString(x)
	case float64, bool:
		*f = flexString(strings.TrimSpace(string(b)))
	default:
		*f = ""
	}
	return nil
}

// flexText accepts a string, an array of strings joined by blank lines, or
// any other JSON value rendered as indented JSON.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = flexText(s)
		return nil
	}
	var arr []any
	if err := json.Unmarshal(b, &arr); err == nil {
		parts := make([]string, 0, len(arr))
		for _, v := range arr {
			switch x := v.(type) {
			case string:
				parts = append(parts, x)
			default:
				enc, _ := json.MarshalIndent(x, "", "  ")
				parts = append(parts, string(enc))
			}
		}
		*t = flexText(strings.Join(parts, "\n\n"))
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil || v == nil {
		*t = ""
		return nil
	}
	enc, _ := json.MarshalIndent(v, "", "  ")
	*t = flexText(enc)
	return nil
}

// --- marker strategy ---

type section int

const (
	sectionNone section = iota
	sectionTitle
	sectionContent
	sectionTakeaways
	sectionTags
)

var markers = []struct {
	label string
	sec   section
}{
	{"KEY_TAKEAWAYS:", sectionTakeaways},
	{"TITLE:", sectionTitle},
	{"CONTENT:", sectionContent},
	{"TAGS:", sectionTags},
}

// matchMarker reports whether line opens a section and returns the text
// following the marker on the same line. Markdown emphasis around the
// marker ("**TITLE:**") is tolerated.
func matchMarker(line string) (section, string, bool) {
	cleaned := strings.TrimLeft(strings.TrimSpace(line), "*# ")
	for _, m := range markers {
		if strings.HasPrefix(cleaned, m.label) {
			rest := strings.TrimLeft(cleaned[len(m.label):], "* ")
			return m.sec, strings.TrimSpace(rest), true
		}
	}
	return sectionNone, "", false
}

var bulletPrefix = regexp.MustCompile(`^\s*[-•]\s*`)

func fromSectionMarkers(raw string, _ GenerationRequest) (draft, bool) {
	var (
		d       draft
		found   bool
		current = sectionNone
		body    []string
	)

	add := func(sec section, text string) {
		switch sec {
		case sectionTitle:
			if d.title == "" {
				d.title = strings.TrimSpace(text)
			}
		case sectionContent:
			body = append(body, strings.TrimRight(text, " \t\r"))
		case sectionTakeaways:
			item := strings.TrimSpace(bulletPrefix.ReplaceAllString(text, ""))
			if item != "" {
				d.takeaways = append(d.takeaways, item)
			}
		case sectionTags:
			d.tags = append(d.tags, strings.Split(text, ",")...)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if sec, inline, ok := matchMarker(line); ok {
			found = true
			current = sec
			if inline != "" {
				add(current, inline)
			}
			continue
		}
		if current == sectionContent {
			add(current, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		add(current, line)
	}
	if !found {
		return draft{}, false
	}

	d.content = strings.TrimSpace(strings.Join(body, "\n"))
	return d, true
}
