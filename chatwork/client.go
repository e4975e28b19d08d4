package chatwork

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hook-notify/core"
)

const TokenHeader = "X-ChatWorkToken"

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 1 << 20

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MessagePoster posts a message body to a room using token.
type MessagePoster interface {
	PostMessage(ctx context.Context, token string, roomID string, body string, selfUnread bool) (PostMessageResponse, error)
}

type PostMessageResponse struct {
	MessageID  string `json:"message_id"`
	StatusCode int    `json:"-"`
}

type Client struct {
	BaseURL              string
	HTTP                 HTTPDoer
	MaxResponseBodyBytes int64
}

func NewClient(baseURL string, httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = core.DefaultChatworkBaseURL
	}
	return &Client{
		BaseURL:              baseURL,
		HTTP:                 httpClient,
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

// NewClientFromConfig builds a client with the configured base url and
// timeout.
func NewClientFromConfig(cfg core.ChatworkConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return NewClient(cfg.BaseURL, &http.Client{Timeout: timeout})
}

// PostMessage calls POST /rooms/{room_id}/messages. Non-2xx answers return an
// *APIError; transport failures return a go-errors external error.
func (c *Client) PostMessage(
	ctx context.Context,
	token string,
	roomID string,
	body string,
	selfUnread bool,
) (PostMessageResponse, error) {
	if c == nil || c.HTTP == nil {
		return PostMessageResponse{}, clientError(
			"chatwork: client requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return PostMessageResponse{}, clientError(
			"chatwork: room id is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			nil,
		)
	}

	endpoint := c.BaseURL + "/rooms/" + url.PathEscape(roomID) + "/messages"
	form := url.Values{}
	form.Set("body", body)
	form.Set("self_unread", unreadFlag(selfUnread))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return PostMessageResponse{}, clientWrapError(
			err,
			goerrors.CategoryBadInput,
			"chatwork: create http request",
			http.StatusBadRequest,
			map[string]any{"room_id": roomID},
		)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(TokenHeader, strings.TrimSpace(token))

	res, err := c.HTTP.Do(req)
	if err != nil {
		return PostMessageResponse{}, clientWrapError(
			err,
			goerrors.CategoryExternal,
			"chatwork: execute http request",
			http.StatusBadGateway,
			map[string]any{"room_id": roomID},
		)
	}
	defer res.Body.Close()

	limit := c.MaxResponseBodyBytes
	if limit <= 0 {
		limit = defaultResponseBodyLimit
	}
	payload, err := io.ReadAll(io.LimitReader(res.Body, limit))
	if err != nil {
		return PostMessageResponse{}, clientWrapError(
			err,
			goerrors.CategoryExternal,
			"chatwork: read response body",
			http.StatusBadGateway,
			map[string]any{"room_id": roomID, "status_code": res.StatusCode},
		)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return PostMessageResponse{}, &APIError{
			StatusCode: res.StatusCode,
			Errors:     decodeErrors(payload),
			Body:       payload,
		}
	}

	out := PostMessageResponse{StatusCode: res.StatusCode}
	if len(strings.TrimSpace(string(payload))) > 0 {
		if err := json.Unmarshal(payload, &out); err != nil {
			return PostMessageResponse{}, clientWrapError(
				err,
				goerrors.CategoryExternal,
				"chatwork: decode response body",
				http.StatusBadGateway,
				map[string]any{"room_id": roomID, "status_code": res.StatusCode},
			)
		}
	}
	return out, nil
}

func decodeErrors(payload []byte) []string {
	var envelope struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil
	}
	return envelope.Errors
}

func unreadFlag(selfUnread bool) string {
	if selfUnread {
		return "1"
	}
	return "0"
}

var _ MessagePoster = (*Client)(nil)
