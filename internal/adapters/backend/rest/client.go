package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 15 * time.Second
	DefaultSource  = "web_chat"

	senderTypeUser   = "user"
	maxErrorBodyRune = 200
)

type Config struct {
	BaseURL    string
	Source     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the support-ticket backend over JSON/HTTP.
type Client struct {
	http   *resty.Client
	source string
}

var _ ports.SupportAPI = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	baseURL, err := ValidateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}

	httpClient := resty.New()
	if cfg.HTTPClient != nil {
		httpClient = resty.NewWithClient(cfg.HTTPClient)
	}
	httpClient.
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, source: cfg.Source}, nil
}

// ValidateBaseURL checks the backend base URL is an absolute http(s) URL and
// returns it without a trailing slash.
func ValidateBaseURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("backend base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("backend base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("backend base url host is required")
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

type metadataPayload struct {
	ClientUserID string `json:"client_user_id"`
	ChatClientID string `json:"chat_client_id"`
}

type createTicketPayload struct {
	Content  string          `json:"content"`
	Source   string          `json:"source"`
	UserID   string          `json:"user_id"`
	Metadata metadataPayload `json:"metadata"`
}

type ticketResponse struct {
	ID            flexibleID `json:"id"`
	AssignedAgent *string    `json:"assigned_agent"`
}

type appendMessagePayload struct {
	RequestID  string          `json:"request_id"`
	SenderType string          `json:"sender_type"`
	SenderID   string          `json:"sender_id"`
	Content    string          `json:"content"`
	Metadata   metadataPayload `json:"metadata"`
}

type messageResponse struct {
	ID         flexibleID      `json:"id"`
	SenderType string          `json:"sender_type"`
	Content    string          `json:"content"`
	Timestamp  string          `json:"timestamp"`
	Metadata   json.RawMessage `json:"metadata"`
}

func (c *Client) CreateTicket(ctx context.Context, req ports.CreateTicketRequest) (ports.CreateTicketResult, error) {
	const op = "create ticket"

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createTicketPayload{
			Content:  req.Content,
			Source:   c.source,
			UserID:   req.UserID,
			Metadata: toMetadataPayload(req.Metadata),
		}).
		Post("/requests")
	if err := checkResponse(op, resp, err); err != nil {
		return ports.CreateTicketResult{}, err
	}

	var payload ticketResponse
	if err := decode(op, resp, &payload); err != nil {
		return ports.CreateTicketResult{}, err
	}
	if payload.ID == "" {
		return ports.CreateTicketResult{}, &domain.TransportError{Op: op, StatusCode: resp.StatusCode(), Err: errors.New("response missing ticket id")}
	}

	return ports.CreateTicketResult{
		TicketID:      domain.TicketID(payload.ID),
		AssignedAgent: deref(payload.AssignedAgent),
	}, nil
}

func (c *Client) AppendMessage(ctx context.Context, req ports.AppendMessageRequest) error {
	const op = "append message"

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("ticketID", string(req.TicketID)).
		SetBody(appendMessagePayload{
			RequestID:  string(req.TicketID),
			SenderType: senderTypeUser,
			SenderID:   req.SenderID,
			Content:    req.Content,
			Metadata:   toMetadataPayload(req.Metadata),
		}).
		Post("/requests/{ticketID}/messages")

	return checkResponse(op, resp, err)
}

func (c *Client) ListMessages(ctx context.Context, ticketID domain.TicketID, limit int) ([]ports.RemoteMessage, error) {
	const op = "list messages"

	request := c.http.R().
		SetContext(ctx).
		SetPathParam("ticketID", string(ticketID))
	if limit > 0 {
		request.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := request.Get("/requests/{ticketID}/messages")
	if err := checkResponse(op, resp, err); err != nil {
		return nil, err
	}

	var payload []messageResponse
	if err := decode(op, resp, &payload); err != nil {
		return nil, err
	}

	messages := make([]ports.RemoteMessage, 0, len(payload))
	for _, item := range payload {
		messages = append(messages, ports.RemoteMessage{
			ID:         string(item.ID),
			SenderType: item.SenderType,
			Content:    item.Content,
			Timestamp:  item.Timestamp,
			Metadata:   stringMetadata(item.Metadata),
		})
	}

	return messages, nil
}

func (c *Client) GetTicket(ctx context.Context, ticketID domain.TicketID) (ports.TicketAssignment, error) {
	const op = "get ticket"

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("ticketID", string(ticketID)).
		Get("/requests/{ticketID}")
	if err := checkResponse(op, resp, err); err != nil {
		return ports.TicketAssignment{}, err
	}

	var payload ticketResponse
	if err := decode(op, resp, &payload); err != nil {
		return ports.TicketAssignment{}, err
	}

	return ports.TicketAssignment{AssignedAgent: deref(payload.AssignedAgent)}, nil
}

func checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode(), Err: errorBody(resp.Body())}
	}
	return nil
}

func decode(op string, resp *resty.Response, target any) error {
	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func errorBody(body []byte) error {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	if len(runes) > maxErrorBodyRune {
		trimmed = string(runes[:maxErrorBodyRune]) + "..."
	}
	return errors.New(trimmed)
}

func toMetadataPayload(metadata ports.TicketMetadata) metadataPayload {
	return metadataPayload{
		ClientUserID: metadata.ClientUserID,
		ChatClientID: string(metadata.ChatClientID),
	}
}

// stringMetadata keeps the string-valued entries of a metadata object.
func stringMetadata(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}

	metadata := make(map[string]string, len(values))
	for key, value := range values {
		if text, ok := value.(string); ok {
			metadata[key] = text
		}
	}
	return metadata
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// flexibleID accepts identifiers encoded as JSON strings or numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = flexibleID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(number.String())
	return nil
}
