package meetstreamclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"content-rebirth/cmd/api/httpclient"
	"content-rebirth/models"
)

const (
	DefaultBaseURL = "https://api.meetstream.ai"
	defaultMessage = "Content Rebirth Bot"
	maxBodySize    = 5 * 1024 * 1024
)

var (
	ErrNotConfigured = errors.New("meetstream: MEETSTREAM_API_KEY is not configured")
	ErrInvalidBotID  = errors.New("meetstream: invalid bot id")
)

// HTTPError is a non-2xx answer from the Meetstream API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("meetstream request failed: status=%d body=%s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL        string
	APIKey         string
	DeepgramAPIKey string
	BotMessage     string
	// WebhookURL receives live transcription for REALTIME bots.
	WebhookURL string
	HTTPClient *http.Client
}

// Client talks to the Meetstream bot API.
type Client struct {
	base       *httpclient.BaseClient
	apiKey     string
	deepgram   string
	botMessage string
	webhookURL string
}

func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	msg := cfg.BotMessage
	if msg == "" {
		msg = defaultMessage
	}
	return &Client{
		base:       httpclient.NewBaseClientWithClient(cfg.HTTPClient, baseURL),
		apiKey:     cfg.APIKey,
		deepgram:   cfg.DeepgramAPIKey,
		botMessage: msg,
		webhookURL: cfg.WebhookURL,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type CreateBotInput struct {
	MeetingURL        string
	Name              string
	AudioRequired     *bool
	TranscriptionType models.TranscriptionType
	WebhookURL        string
}

type deepgramSettings struct {
	Model    string `json:"model"`
	Language string `json:"language"`
	APIKey   string `json:"api_key"`
}

type createBotRequest struct {
	MeetingLink               string            `json:"meeting_link"`
	BotName                   string            `json:"bot_name"`
	BotMessage                string            `json:"bot_message"`
	AudioRequired             bool              `json:"audio_required"`
	VideoRequired             bool              `json:"video_required"`
	LiveAudioRequired         map[string]string `json:"live_audio_required"`
	LiveTranscriptionRequired map[string]string `json:"live_transcription_required"`
	Transcription             *struct {
		Deepgram deepgramSettings `json:"deepgram"`
	} `json:"transcription,omitempty"`
	CustomAttributes map[string]string `json:"custom_attributes"`
	CallbackURL      string            `json:"callback_url"`
}

// Bot is the subset of a Meetstream bot payload this service mirrors.
// Raw keeps the full provider answer.
type Bot struct {
	BotID        string          `json:"bot_id"`
	Status       string          `json:"status"`
	TranscriptID string          `json:"transcript_id,omitempty"`
	Raw          json.RawMessage `json:"-"`
}

// CreateBot asks Meetstream to send a bot into the meeting.
func (c *Client) CreateBot(ctx context.Context, in CreateBotInput) (Bot, error) {
	if !c.Configured() {
		return Bot{}, ErrNotConfigured
	}

	audio := true
	if in.AudioRequired != nil {
		audio = *in.AudioRequired
	}
	transcriptionType := "post_meeting"
	live := map[string]string{}
	if in.TranscriptionType == models.TranscriptionRealtime {
		transcriptionType = "realtime"
		webhook := in.WebhookURL
		if webhook == "" {
			webhook = c.webhookURL
		}
		if webhook != "" {
			live["webhook_url"] = webhook
		}
	}

	payload := createBotRequest{
		MeetingLink:               in.MeetingURL,
		BotName:                   in.Name,
		BotMessage:                c.botMessage,
		AudioRequired:             audio,
		VideoRequired:             false,
		LiveAudioRequired:         map[string]string{},
		LiveTranscriptionRequired: live,
		CustomAttributes: map[string]string{
			"transcription_type": transcriptionType,
			"source":             "content-rebirth",
		},
	}
	if c.deepgram != "" {
		payload.Transcription = &struct {
			Deepgram deepgramSettings `json:"deepgram"`
		}{Deepgram: deepgramSettings{Model: "nova-3", Language: "en", APIKey: c.deepgram}}
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return Bot{}, err
	}
	body, err := c.do(ctx, http.MethodPost, "/api/v1/bots/create_bot", bytes.NewReader(buf))
	if err != nil {
		return Bot{}, err
	}
	return decodeBot(body)
}

// GetBot returns the provider's detail view of a bot.
func (c *Client) GetBot(ctx context.Context, botID string) (Bot, error) {
	body, err := c.botCall(ctx, botID, "detail")
	if err != nil {
		return Bot{}, err
	}
	bot, err := decodeBot(body)
	if err != nil {
		return Bot{}, err
	}
	if bot.BotID == "" {
		bot.BotID = botID
	}
	return bot, nil
}

// GetBotStatus returns the provider's status view of a bot.
func (c *Client) GetBotStatus(ctx context.Context, botID string) (Bot, error) {
	body, err := c.botCall(ctx, botID, "status")
	if err != nil {
		return Bot{}, err
	}
	bot, err := decodeBot(body)
	if err != nil {
		return Bot{}, err
	}
	if bot.BotID == "" {
		bot.BotID = botID
	}
	return bot, nil
}

// RemoveBot makes the bot leave its meeting.
func (c *Client) RemoveBot(ctx context.Context, botID string) error {
	_, err := c.botCall(ctx, botID, "remove_bot")
	return err
}

// GetTranscript returns the transcript payload as sent by the provider.
func (c *Client) GetTranscript(ctx context.Context, botID string) (json.RawMessage, error) {
	body, err := c.botCall(ctx, botID, "get_transcript")
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		// plain text transcripts are wrapped as a JSON string
		b, err := json.Marshal(string(body))
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return body, nil
}

// Health checks the API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

func (c *Client) botCall(ctx context.Context, botID, action string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if botID == "" || strings.ContainsAny(botID, "/?#") {
		return nil, ErrInvalidBotID
	}
	return c.do(ctx, http.MethodGet, "/api/v1/bots/"+botID+"/"+action, nil)
}

func (c *Client) do(ctx context.Context, method, relPath string, body io.Reader) ([]byte, error) {
	req, err := c.base.NewRequest(ctx, method, relPath, nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return nil, fmt.Errorf("meetstream response read failed: %w", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// decodeBot reads bot fields leniently: ids may be strings or numbers and
// the status may be reported as "status" or "bot_status".
func decodeBot(body []byte) (Bot, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return Bot{}, fmt.Errorf("meetstream: decode bot: %w", err)
	}
	return Bot{
		BotID:        firstString(m, "bot_id", "id"),
		Status:       firstString(m, "status", "bot_status"),
		TranscriptID: firstString(m, "transcript_id"),
		Raw:          json.RawMessage(body),
	}, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
