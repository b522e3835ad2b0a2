package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://kalamai-backend-production.up.railway.app/api"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 2 * time.Minute

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the request is sent without Authorization.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Error is returned for any non-success HTTP response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client is a thin JSON wrapper over the Kalam HTTP API.
// Every call is a single request; nothing is retried.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client rooted at baseURL. tokens may be nil for
// unauthenticated use (login, register).
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate submits a generation request.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GeneratedContent, error) {
	var out generateResponse
	if err := c.do(ctx, http.MethodPost, "/content/generate", req, &out); err != nil {
		return nil, err
	}
	return &out.Content, nil
}

// History lists the user's stored generations.
func (c *Client) History(ctx context.Context) ([]ContentItem, error) {
	var out historyResponse
	if err := c.do(ctx, http.MethodGet, "/content/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Contents, nil
}

// Content fetches a single stored generation.
func (c *Client) Content(ctx context.Context, id string) (*ContentItem, error) {
	var out itemResponse
	if err := c.do(ctx, http.MethodGet, contentPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Content, nil
}

// UpdateContent replaces the text of a stored generation.
func (c *Client) UpdateContent(ctx context.Context, id string, update ContentUpdate) error {
	return c.do(ctx, http.MethodPut, contentPath(id), update, nil)
}

// DeleteContent removes a stored generation.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, contentPath(id), nil, nil)
}

func contentPath(id string) string {
	return "/content/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError builds an Error from a failed response. JSON bodies contribute
// their "message" (or "error") field; anything else is used verbatim.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	text := strings.TrimSpace(string(data))

	msg := text
	if isJSON(resp.Header.Get("Content-Type")) {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			switch {
			case payload.Message != "":
				msg = payload.Message
			case payload.Error != "":
				msg = payload.Error
			}
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
