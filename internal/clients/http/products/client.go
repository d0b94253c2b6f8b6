package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/orders/ports"
)

// Client fetches catalog entries from the product service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the product catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("product service base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// GetProduct loads the catalog slice the order workflow needs. A 404 yields
// (nil, nil) so callers can treat "missing" and "unreachable" however their
// contract demands.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*ports.ProductInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/products/%d", c.baseURL, productID), nil)
	if err != nil {
		return nil, fmt.Errorf("build product lookup request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call product service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var product ports.ProductInfo
		if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
			return nil, fmt.Errorf("decode product response: %w", err)
		}
		return &product, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("product service unexpected status: %s", resp.Status)
	}
}

var _ ports.ProductCatalog = (*Client)(nil)
