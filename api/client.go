// Package api implements the starprep collaborator interfaces against the
// remote resume-tailoring service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/fwojciec/starprep"
	"github.com/rs/zerolog"
)

// Compile-time interface verification.
var (
	_ starprep.StoryService      = (*Client)(nil)
	_ starprep.ExperienceService = (*Client)(nil)
	_ starprep.StoryGenerator    = (*Client)(nil)
	_ starprep.ResumeUploader    = (*Client)(nil)
)

// APIError is an explicit failure reported by the service. The message is
// the server-provided error when present, else a fixed per-operation
// fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the uniform response shape every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client talks to the remote API. Every method returns a plain error:
// explicit failures ({success:false}) become *APIError, transport and
// parse failures are wrapped with the same per-operation message, and
// nothing ever panics past this boundary.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithToken sets a bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the request logger. Logging is off by default so the
// TUI keeps sole ownership of the terminal.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListStories fetches the full story list. The service has returned both
// a bare list and a {"stories": [...]} wrapper across versions; both are
// accepted.
func (c *Client) ListStories(ctx context.Context) ([]starprep.Story, error) {
	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/stories", nil, &data, "failed to load stories"); err != nil {
		return nil, err
	}
	return decodeStoryList(data)
}

func decodeStoryList(data json.RawMessage) ([]starprep.Story, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var stories []starprep.Story
	if err := json.Unmarshal(data, &stories); err == nil {
		return stories, nil
	}

	var wrapped struct {
		Stories []starprep.Story `json:"stories"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}
	return wrapped.Stories, nil
}

// CreateStory persists a story and returns it with its server identity.
func (c *Client) CreateStory(ctx context.Context, story starprep.Story) (starprep.Story, error) {
	var created starprep.Story
	err := c.do(ctx, http.MethodPost, "/api/stories", story, &created, "failed to save story")
	return created, err
}

// UpdateStory patches the editable fields of a persisted story.
func (c *Client) UpdateStory(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
	var updated starprep.Story
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/stories/%d", id), patch, &updated, "failed to update story")
	return updated, err
}

// DeleteStory removes a persisted story.
func (c *Client) DeleteStory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/stories/%d", id), nil, nil, "failed to delete story")
}

// GenerateStory asks the service to draft a story from the selected
// experiences. Only indices are sent; the service holds the resume.
func (c *Client) GenerateStory(ctx context.Context, req starprep.GenerateRequest) (starprep.Story, error) {
	body := struct {
		ExperienceIndices []int  `json:"experience_indices"`
		Theme             string `json:"theme"`
		Tone              string `json:"tone"`
		CompanyContext    string `json:"company_context,omitempty"`
	}{req.ExperienceIndices, req.Theme, req.Tone, req.CompanyContext}

	var story starprep.Story
	err := c.do(ctx, http.MethodPost, "/api/stories/generate", body, &story, "failed to generate story")
	return story, err
}

// AnalyzeStory scores a story and returns improvement feedback.
func (c *Client) AnalyzeStory(ctx context.Context, id int64) (*starprep.Analysis, error) {
	var analysis starprep.Analysis
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/stories/%d/analyze", id), nil, &analysis, "failed to analyze story"); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// StorySuggestions returns per-section rewrite prompts for a story.
func (c *Client) StorySuggestions(ctx context.Context, id int64) (*starprep.Suggestions, error) {
	var suggestions starprep.Suggestions
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/stories/%d/suggestions", id), nil, &suggestions, "failed to load suggestions"); err != nil {
		return nil, err
	}
	return &suggestions, nil
}

// StoryVariations asks for retellings of a story in other contexts/tones.
func (c *Client) StoryVariations(ctx context.Context, req starprep.VariationsRequest) (*starprep.Variations, error) {
	var variations starprep.Variations
	if err := c.do(ctx, http.MethodPost, "/api/stories/variations", req, &variations, "failed to generate variations"); err != nil {
		return nil, err
	}
	return &variations, nil
}

// ListExperiences fetches the resume experiences.
func (c *Client) ListExperiences(ctx context.Context) ([]starprep.Experience, error) {
	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/experiences", nil, &data, "failed to load experiences"); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var experiences []starprep.Experience
	if err := json.Unmarshal(data, &experiences); err == nil {
		return experiences, nil
	}

	var wrapped struct {
		Experiences []starprep.Experience `json:"experiences"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to load experiences: %w", err)
	}
	return wrapped.Experiences, nil
}

// UploadResume sends a resume document for parsing. The MIME type is
// validated against the allow-list again here: the picker is an external
// collaborator and its restriction is not trusted.
func (c *Client) UploadResume(ctx context.Context, file starprep.FileInfo, content io.Reader) error {
	if !starprep.AllowedDocument(file.MIMEType) {
		return fmt.Errorf("unsupported document type %q", file.MIMEType)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.MIMEType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/resume/upload", &body)
	if err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	return c.send(req, nil, "failed to upload resume")
}

// do executes a JSON request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", fallback, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req, out, fallback)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// send executes req and normalizes every failure mode — transport error,
// malformed body, explicit {success:false} — into a single error shape.
func (c *Client) send(req *http.Request, out any, fallback string) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Str("method", req.Method).Str("path", req.URL.Path).Err(err).Msg("request failed")
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fallback
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	return nil
}
