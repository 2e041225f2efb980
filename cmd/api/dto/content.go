package dto

// GenerateContentRequest is the body of POST /content/generate.
type GenerateContentRequest struct {
	Transcript string   `json:"transcript" example:"Alice: we need to update the roadmap..."`
	Type       string   `json:"type" example:"ARTICLE"`
	Tone       string   `json:"tone" example:"professional"`
	Length     string   `json:"length" example:"medium"`
	Title      string   `json:"title,omitempty"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	MeetingID  string   `json:"meetingId,omitempty"`
}

// OutlineRequest is the body of POST /content/outline.
type OutlineRequest struct {
	Transcript string `json:"transcript"`
	Type       string `json:"type" example:"BLOG_POST"`
}

// InsightsRequest is the body of POST /content/insights.
type InsightsRequest struct {
	Transcript string `json:"transcript"`
}

// ListResponseDTO wraps outline sections or insights.
type ListResponseDTO struct {
	Items []string `json:"items"`
}

type PublishRequest struct {
	Platform string `json:"platform" example:"medium"`
}

// PublishSnippetDTO is the content copied to the target platform by the
// dashboard.
type PublishSnippetDTO struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

type PublishResultDTO struct {
	URL      string            `json:"url" example:"https://medium.com/new-story"`
	Platform string            `json:"platform" example:"medium"`
	Content  PublishSnippetDTO `json:"content"`
}
