package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
)

// Client delivers fire-and-forget notifications to the notification
// service. Failures are counted so the best-effort contract stays visible
// to operators even though callers swallow the error.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	failures metric.Int64Counter
}

type Option func(*Client)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMeter creates the delivery-failure counter on the given meter.
func WithMeter(m metric.Meter) Option {
	return func(c *Client) {
		if m == nil {
			return
		}
		c.failures, _ = m.Int64Counter("orders.notifications.failed",
			metric.WithDescription("Number of notification deliveries that failed"))
	}
}

// NewClient instantiates the notification client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("notification service base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	c := &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Send posts the notification. The response body is ignored; any non-2xx
// status or transport failure is reported, counted, and logged, and the
// caller decides whether to swallow it.
func (c *Client) Send(ctx context.Context, notification ports.Notification) error {
	if err := c.send(ctx, notification); err != nil {
		if c.failures != nil {
			c.failures.Add(ctx, 1)
		}
		c.logger.WarnContext(ctx, "notification delivery failed",
			slog.Int64("user.id", notification.UserID),
			slog.String("notification.type", notification.Type),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (c *Client) send(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call notification service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification service unexpected status: %s", resp.Status)
	}
	return nil
}

var _ ports.Notifier = (*Client)(nil)
