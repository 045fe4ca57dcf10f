package widgetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"chat-widget/internal/domain"
)

const (
	chatPath            = "/chat"
	saveContactPath     = "/save-contact"
	bookAppointmentPath = "/book-appointment"

	defaultTimeout = 15 * time.Second
)

// chatRequest is the request body of the chat endpoint.
type chatRequest struct {
	Message string `json:"message"`
}

// tokenPayload is the expected JSON shape stored in SSM for the API token.
type tokenPayload struct {
	Token string `json:"token"`
}

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// HTTPStatusError captures non-2xx endpoint responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("widgetapi: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client talks to the chat, contact and appointment endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client

	token       string
	getter      Getter
	tokenParam  string
	tokenMu     sync.Mutex
	resolvedTok string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets a static bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTokenParameter resolves the bearer token from the parameter store on the
// first request. A static token set with WithToken takes precedence.
func WithTokenParameter(g Getter, name string) Option {
	return func(c *Client) {
		c.getter = g
		c.tokenParam = strings.TrimSpace(name)
	}
}

// NewClient creates a Client for the endpoints rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("widgetapi: base URL must not be empty")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.getter == nil && c.tokenParam != "" {
		return nil, errors.New("widgetapi: token parameter set without a getter")
	}
	return c, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

// resolveToken returns the bearer token, or "" when none is configured. Only a
// successfully fetched parameter-store token is cached; a failed fetch is
// retried on the next request.
func (c *Client) resolveToken(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}
	if c.getter == nil || c.tokenParam == "" {
		return "", nil
	}
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	if c.resolvedTok != "" {
		return c.resolvedTok, nil
	}
	tok, err := fetchTokenFromParamStore(ctx, c.getter, c.tokenParam)
	if err != nil {
		return "", err
	}
	c.resolvedTok = tok
	return tok, nil
}

func endpointURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

// Chat sends a user message and decodes the reply into one of the
// domain.ChatReply variants.
func (c *Client) Chat(ctx context.Context, message string) (domain.ChatReply, error) {
	raw, err := c.postJSON(ctx, chatPath, chatRequest{Message: message})
	if err != nil {
		return domain.ChatReply{}, err
	}
	reply, err := DecodeChatReply(raw)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("widgetapi: decode chat reply: %w", err)
	}
	return reply, nil
}

// SaveContact submits the contact form.
func (c *Client) SaveContact(ctx context.Context, in domain.ContactDetails) (domain.SubmitReply, error) {
	raw, err := c.postJSON(ctx, saveContactPath, in)
	if err != nil {
		return domain.SubmitReply{}, err
	}
	reply, err := DecodeSubmitReply(raw)
	if err != nil {
		return domain.SubmitReply{}, fmt.Errorf("widgetapi: decode contact reply: %w", err)
	}
	return reply, nil
}

// BookAppointment submits the appointment form.
func (c *Client) BookAppointment(ctx context.Context, in domain.AppointmentRequest) (domain.SubmitReply, error) {
	raw, err := c.postJSON(ctx, bookAppointmentPath, in)
	if err != nil {
		return domain.SubmitReply{}, err
	}
	reply, err := DecodeSubmitReply(raw)
	if err != nil {
		return domain.SubmitReply{}, fmt.Errorf("widgetapi: decode appointment reply: %w", err)
	}
	return reply, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in any) ([]byte, error) {
	token, err := c.resolveToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("widgetapi: marshal request: %w", err)
	}

	url := endpointURL(c.baseURL, path)

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return nil, fmt.Errorf("widgetapi: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-Id", newCorrelationID())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	raw, err := c.doJSONRequest(req, url)
	if err != nil {
		return nil, fmt.Errorf("widgetapi: request %s failed: %w", path, err)
	}
	return raw, nil
}

func (c *Client) doJSONRequest(req *http.Request, url string) ([]byte, error) {
	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		return nil, doErr
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}

func fetchTokenFromParamStore(ctx context.Context, getter Getter, name string) (string, error) {
	if getter == nil {
		return "", errors.New("widgetapi: paramstore getter is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("widgetapi: token parameter name is empty")
	}

	raw, err := getter.GetParameter(ctx, name)
	if err != nil {
		return "", fmt.Errorf("widgetapi: fetch token from paramstore: %w", err)
	}
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("widgetapi: unmarshal paramstore token value as JSON: %w", err)
	}
	if tp.Token == "" {
		return "", errors.New("widgetapi: API token is empty")
	}
	return tp.Token, nil
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
