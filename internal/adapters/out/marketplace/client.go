// Package marketplace implements the marketplace order API client. All
// methods perform a single HTTP call with a bounded timeout and hand back
// the raw exchange so the caller can audit it verbatim. Retrying is the
// caller's concern, not the client's.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/tidwall/gjson"
)

const serviceName = "Marketplace"

// maxResponseBytes bounds how much of a response body is read into memory
// and into the audit log.
const maxResponseBytes = 1 << 20

// Post-acceptance states reported by the marketplace. Anything else that is
// not a cancellation counts as still pending.
const (
	stateWaitingDebitPayment = "WAITING_DEBIT_PAYMENT"
	stateShipping            = "SHIPPING"
	stateCancelled           = "CANCELLED"
)

// Config holds the connection settings for the marketplace API.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the marketplace orders API. Implements ports.MarketplaceClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a marketplace client with a bounded request timeout.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("cfg.BaseURL")
	}
	if cfg.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("cfg.APIKey")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}, nil
}

// acceptLine mirrors the wire format of one accepted order line.
type acceptLine struct {
	Accepted bool   `json:"accepted"`
	ID       string `json:"id"`
}

// acceptPayload is the body of the accept call: every line of the order,
// marked accepted.
type acceptPayload struct {
	OrderLines []acceptLine `json:"order_lines"`
}

// AcceptOrder confirms all order lines with the marketplace.
func (c *Client) AcceptOrder(ctx context.Context, ord *order.Order) (ports.Exchange, error) {
	payload := acceptPayload{OrderLines: make([]acceptLine, 0, len(ord.Lines()))}
	for _, line := range ord.Lines() {
		payload.OrderLines = append(payload.OrderLines, acceptLine{Accepted: true, ID: line.ID})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.Exchange{}, errs.NewTransportErrorWithCause(serviceName, "AcceptOrder", 0, err)
	}

	return c.put(ctx, fmt.Sprintf("%s/%s/accept", c.baseURL, ord.ID()), body, "AcceptOrder")
}

// GetOrderState fetches and classifies the marketplace's view of the order.
func (c *Client) GetOrderState(ctx context.Context, orderID string) (ports.OrderState, ports.Exchange, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, orderID), nil)
	if err != nil {
		return ports.OrderState{}, ports.Exchange{}, errs.NewTransportErrorWithCause(serviceName, "GetOrderState", 0, err)
	}
	req.Header.Set("Authorization", c.apiKey)

	exchange, err := c.execute(req, "", "GetOrderState")
	if err != nil {
		return ports.OrderState{}, exchange, err
	}

	raw := gjson.Get(exchange.ResponseBody, "order_state").String()
	return ports.OrderState{Raw: raw, Class: classify(raw)}, exchange, nil
}

// SetTracking submits the carrier code and tracking identifier.
func (c *Client) SetTracking(ctx context.Context, orderID, trackingPin string) (ports.Exchange, error) {
	body, err := json.Marshal(map[string]string{
		"carrier_code":    "CPCL",
		"tracking_number": trackingPin,
	})
	if err != nil {
		return ports.Exchange{}, errs.NewTransportErrorWithCause(serviceName, "SetTracking", 0, err)
	}

	return c.put(ctx, fmt.Sprintf("%s/%s/tracking", c.baseURL, orderID), body, "SetTracking")
}

// MarkShipped confirms shipment of the whole order.
func (c *Client) MarkShipped(ctx context.Context, orderID string) (ports.Exchange, error) {
	return c.put(ctx, fmt.Sprintf("%s/%s/ship", c.baseURL, orderID), nil, "MarkShipped")
}

func (c *Client) put(ctx context.Context, url string, body []byte, operation string) (ports.Exchange, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return ports.Exchange{RequestPayload: string(body)}, errs.NewTransportErrorWithCause(serviceName, operation, 0, err)
	}
	req.Header.Set("Authorization", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, string(body), operation)
}

// execute runs the request and always fills the Exchange as far as the wire
// got, so failed calls audit just like successful ones.
func (c *Client) execute(req *http.Request, requestPayload, operation string) (ports.Exchange, error) {
	exchange := ports.Exchange{RequestPayload: requestPayload}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exchange, errs.NewTransportErrorWithCause(serviceName, operation, 0, err)
	}
	defer resp.Body.Close()

	exchange.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return exchange, errs.NewTransportErrorWithCause(serviceName, operation, resp.StatusCode, err)
	}
	exchange.ResponseBody = string(body)

	if resp.StatusCode >= 400 {
		return exchange, errs.NewTransportError(serviceName, operation, resp.StatusCode)
	}

	return exchange, nil
}

func classify(raw string) ports.StateClass {
	switch raw {
	case stateWaitingDebitPayment, stateShipping:
		return ports.StateAccepted
	case stateCancelled:
		return ports.StateCancelled
	default:
		return ports.StatePending
	}
}
