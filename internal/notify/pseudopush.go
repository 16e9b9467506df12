// Package notify pushes resource notifications to the external PseudoPush sink.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/logger"
	"github.com/MrSnakeDoc/connector/internal/utils"
)

const (
	// APIKeyHeader carries the configured api key on every request.
	APIKeyHeader = "x-api-key"

	// DefaultTimeout bounds a single notification request.
	DefaultTimeout = 10 * time.Second

	maxBodyLog = 4 << 10
)

// ErrDeliveryFailed means the notification did not reach the sink, or the sink
// rejected it with a non-5xx status. The caller decides what to do with it.
var ErrDeliveryFailed = errors.New("notification not delivered")

// Outcome describes what happened to a notification that reached the sink.
type Outcome string

const (
	// OutcomeDelivered means the sink answered with a 2xx status.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeServerError means the sink answered with a 5xx status. It is
	// logged and not reported as an error.
	OutcomeServerError Outcome = "server_error"
)

// Result is returned for every notification that reached the sink.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Body       string
}

// Options configures a PseudoPush notifier.
type Options struct {
	URL     string        // destination, required at call time
	APIKey  string        // sent as x-api-key
	Timeout time.Duration // client timeout, DefaultTimeout when <= 0
}

// PseudoPush posts {"id": "<resource uri>"} to the configured sink.
type PseudoPush struct {
	url    string
	apiKey string
	client *http.Client
	logger logger.Logger
}

type pushRequest struct {
	ID string `json:"id"`
}

// NewPseudoPush creates a notifier. An empty URL is accepted here and
// rejected by Notify.
func NewPseudoPush(opts Options, log logger.Logger) *PseudoPush {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PseudoPush{
		url:    strings.TrimSpace(opts.URL),
		apiKey: opts.APIKey,
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

// Configured reports whether a destination url is set.
func (p *PseudoPush) Configured() bool {
	return p.url != ""
}

// Notify sends one notification for resourceID. It is attempted exactly once.
//
// A 5xx answer is logged and returned as OutcomeServerError with a nil error.
// Transport failures and other non-2xx answers return ErrDeliveryFailed.
func (p *PseudoPush) Notify(ctx context.Context, resourceID *url.URL) (Result, error) {
	if !p.Configured() {
		return Result{}, fmt.Errorf("pseudopush url is mandatory and cannot be empty: %w", domain.ErrInvalidConfiguration)
	}
	if resourceID == nil {
		return Result{}, fmt.Errorf("resource id: %w", domain.ErrNullArgument)
	}

	payload, err := json.Marshal(pushRequest{ID: resourceID.String()})
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %v: %w", err, domain.ErrInvalidConfiguration)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(APIKeyHeader, p.apiKey)

	p.logger.Info("sending resource notification",
		logger.String("destination", p.url),
		logger.String("resource_id", resourceID.String()))

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("resource notification failed",
			logger.String("destination", p.url),
			logger.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer utils.Close(resp.Body)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLog))
	res := Result{StatusCode: resp.StatusCode, Body: string(body)}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		res.Outcome = OutcomeDelivered
		p.logger.Info("response from pseudopush",
			logger.Int("status", resp.StatusCode),
			logger.String("body", res.Body))
		return res, nil

	case resp.StatusCode >= 500:
		res.Outcome = OutcomeServerError
		p.logger.Error("pseudopush server error",
			logger.Int("status", resp.StatusCode),
			logger.String("body", res.Body))
		return res, nil

	default:
		p.logger.Warn("pseudopush rejected notification",
			logger.Int("status", resp.StatusCode),
			logger.String("body", res.Body))
		return res, fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}
}
