package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
)

// Client answers user existence checks against the user service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the user directory client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("user service base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// Exists reports whether the user service answers 200 for the id. A 404 is
// a clean negative; any other status is an error the caller may still fold
// into a negative answer.
func (c *Client) Exists(ctx context.Context, userID int64) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/users/%d", c.baseURL, userID), nil)
	if err != nil {
		return false, fmt.Errorf("build user lookup request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("call user service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("user service unexpected status: %s", resp.Status)
	}
}

var _ ports.UserDirectory = (*Client)(nil)
