package dto

// CreateMeetingRequest is the body of POST /meetings.
type CreateMeetingRequest struct {
	Title        string         `json:"title" example:"Q3 planning"`
	Description  string         `json:"description,omitempty"`
	MeetingID    string         `json:"meetingId" example:"bot_123"`
	Transcript   string         `json:"transcript"`
	Duration     int64          `json:"duration" example:"2520"`
	Participants []string       `json:"participants"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
