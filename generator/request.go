package generator

import (
	"strings"

	"content-rebirth/models"
)

type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneCasual         Tone = "casual"
	ToneAcademic       Tone = "academic"
	ToneConversational Tone = "conversational"
)

var Tones = []Tone{ToneProfessional, ToneCasual, ToneAcademic, ToneConversational}

func (t Tone) Valid() bool {
	_, ok := toneDirectives[t]
	return ok
}

type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

var Lengths = []Length{LengthShort, LengthMedium, LengthLong}

func (l Length) Valid() bool {
	_, ok := lengthDirectives[l]
	return ok
}

// MaxTokens is the output token budget requested from the provider.
func (l Length) MaxTokens() int {
	if n, ok := lengthTokenBudgets[l]; ok {
		return n
	}
	return lengthTokenBudgets[LengthMedium]
}

// GenerationRequest is one user request to turn a transcript into content.
type GenerationRequest struct {
	Transcript  string
	ContentType models.ContentType
	Tone        Tone
	Length      Length
	Title       string
	Category    string
	Tags        []string
}

// WithDefaults normalizes the case of the enum fields and fills the
// missing ones: ARTICLE, professional, medium.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	r.ContentType = models.ContentType(strings.ToUpper(strings.TrimSpace(string(r.ContentType))))
	r.Tone = Tone(strings.ToLower(strings.TrimSpace(string(r.Tone))))
	r.Length = Length(strings.ToLower(strings.TrimSpace(string(r.Length))))
	if r.ContentType == "" {
		r.ContentType = models.ContentTypeArticle
	}
	if r.Tone == "" {
		r.Tone = ToneProfessional
	}
	if r.Length == "" {
		r.Length = LengthMedium
	}
	return r
}

// GeneratedContent is the structured result extracted from provider output.
type GeneratedContent struct {
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Summary      string         `json:"summary"`
	KeyTakeaways []string       `json:"keyTakeaways"`
	SEOData      models.SEOData `json:"seoData"`
	Tags         []string       `json:"tags"`
	Category     string         `json:"category"`
}
