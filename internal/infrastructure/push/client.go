package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Message is one notification addressed to a device registration token.
type Message struct {
	Token string            `json:"-"`
	Title string            `json:"-"`
	Body  string            `json:"-"`
	Data  map[string]string `json:"-"`
}

// Result reports the delivery outcome for one token.
type Result struct {
	Token        string
	OK           bool
	Unregistered bool
	Err          string
}

// Config configures the gateway client.
type Config struct {
	Endpoint  string
	ServerKey string
	Timeout   time.Duration
}

// Client talks to an FCM-style HTTP push gateway.
type Client struct {
	cfg    Config
	http   *fasthttp.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &fasthttp.Client{Name: "rotina-push"},
		logger: logger,
	}
}

type sendRequest struct {
	To           string            `json:"to"`
	Notification *notification     `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	DryRun       bool              `json:"dry_run,omitempty"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Send delivers a single notification.
func (c *Client) Send(ctx context.Context, msg Message) error {
	result, err := c.post(ctx, sendRequest{
		To:           msg.Token,
		Notification: &notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("push rejected: %s", result.Err)
	}
	return nil
}

// SendBatch delivers a set of notifications, returning one result per message.
// A transport failure aborts the batch; per-token rejections do not.
func (c *Client) SendBatch(ctx context.Context, msgs []Message) ([]Result, error) {
	results := make([]Result, 0, len(msgs))
	for _, msg := range msgs {
		result, err := c.post(ctx, sendRequest{
			To:           msg.Token,
			Notification: &notification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
		})
		if err != nil {
			return results, err
		}
		result.Token = msg.Token
		results = append(results, result)
	}
	return results, nil
}

// ValidateTokens dry-runs a data-only message against each token so invalid
// registrations can be detected without notifying anyone.
func (c *Client) ValidateTokens(ctx context.Context, tokens []string) ([]Result, error) {
	results := make([]Result, 0, len(tokens))
	for _, token := range tokens {
		result, err := c.post(ctx, sendRequest{
			To:     token,
			Data:   map[string]string{"type": "test"},
			DryRun: true,
		})
		if err != nil {
			return results, err
		}
		result.Token = token
		results = append(results, result)
	}
	return results, nil
}

func (c *Client) post(ctx context.Context, payload sendRequest) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.Endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "key="+c.cfg.ServerKey)
	req.SetBody(body)

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return Result{}, fmt.Errorf("push gateway unreachable: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return Result{}, fmt.Errorf("push gateway returned status %d", resp.StatusCode())
	}

	var parsed sendResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return Result{}, err
	}

	result := Result{OK: parsed.Failure == 0}
	if len(parsed.Results) > 0 && parsed.Results[0].Error != "" {
		result.Err = parsed.Results[0].Error
		result.Unregistered = isUnregistered(parsed.Results[0].Error)
	}
	return result, nil
}

func isUnregistered(code string) bool {
	switch code {
	case "NotRegistered", "InvalidRegistration", "MissingRegistration":
		return true
	}
	return false
}
