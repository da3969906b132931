// Package carrier implements the shipping carrier client: contract shipment
// creation, label artifact download and shipment voiding. The carrier speaks
// a namespaced XML dialect and authenticates every call with basic auth.
package carrier

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const serviceName = "Carrier"

const (
	shipmentContentType = "application/vnd.cpc.shipment-v8+xml"
	labelContentType    = "application/pdf"
)

// maxResponseBytes bounds XML response reads. Label artifacts get a larger
// allowance of their own.
const (
	maxResponseBytes = 1 << 20
	maxLabelBytes    = 16 << 20
)

// Config holds the connection and contract settings for the carrier API.
type Config struct {
	BaseURL        string
	CustomerNumber string
	ContractID     string
	PaidByCustomer string
	APIUser        string
	APIPassword    string
	Sender         Sender
	Timeout        time.Duration
}

// Client calls the carrier shipping API. Implements ports.CarrierClient.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	customerNumber string
	contractID     string
	paidByCustomer string
	apiUser        string
	apiPassword    string
	sender         Sender
}

// NewClient creates a carrier client with a bounded request timeout.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("cfg.BaseURL")
	}
	if cfg.CustomerNumber == "" {
		return nil, errs.NewValueIsRequiredError("cfg.CustomerNumber")
	}
	if cfg.APIUser == "" {
		return nil, errs.NewValueIsRequiredError("cfg.APIUser")
	}
	if cfg.APIPassword == "" {
		return nil, errs.NewValueIsRequiredError("cfg.APIPassword")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	paidByCustomer := cfg.PaidByCustomer
	if paidByCustomer == "" {
		paidByCustomer = cfg.CustomerNumber
	}

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        cfg.BaseURL,
		customerNumber: cfg.CustomerNumber,
		contractID:     cfg.ContractID,
		paidByCustomer: paidByCustomer,
		apiUser:        cfg.APIUser,
		apiPassword:    cfg.APIPassword,
		sender:         cfg.Sender,
	}, nil
}

// CreateShipment registers a transmitted shipment for the order and returns
// the tracking pin, the label reference and the destination echo used by the
// structural validation gate.
func (c *Client) CreateShipment(ctx context.Context, ord *order.Order) (ports.CreateShipmentResult, ports.Exchange, error) {
	document, err := buildShipmentRequest(ord, c.sender, c.contractID, c.paidByCustomer)
	if err != nil {
		return ports.CreateShipmentResult{}, ports.Exchange{}, err
	}

	url := fmt.Sprintf("%s/rs/%s/%s/shipment", c.baseURL, c.customerNumber, c.customerNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(document))
	if err != nil {
		return ports.CreateShipmentResult{}, ports.Exchange{RequestPayload: string(document)},
			errs.NewTransportErrorWithCause(serviceName, "CreateShipment", 0, err)
	}
	req.SetBasicAuth(c.apiUser, c.apiPassword)
	req.Header.Set("Content-Type", shipmentContentType)
	req.Header.Set("Accept", shipmentContentType)

	exchange, err := c.execute(req, string(document), "CreateShipment", maxResponseBytes)
	if err != nil {
		return ports.CreateShipmentResult{}, exchange, err
	}

	var parsed createShipmentResponse
	if err := xml.Unmarshal([]byte(exchange.ResponseBody), &parsed); err != nil {
		return ports.CreateShipmentResult{}, exchange,
			errs.NewValidationErrorWithCause("carrier response", "document is not parseable", err)
	}
	if parsed.TrackingPin == "" || parsed.labelLink() == "" {
		return ports.CreateShipmentResult{}, exchange,
			errs.NewValidationError("carrier response", "tracking pin or label reference missing")
	}

	return ports.CreateShipmentResult{
		TrackingPin:         parsed.TrackingPin,
		LabelURL:            parsed.labelLink(),
		ResponseDocument:    exchange.ResponseBody,
		RecipientName:       parsed.Destination.Name,
		RecipientPostalCode: parsed.Destination.PostalZipCode,
	}, exchange, nil
}

// FetchLabel downloads the label artifact behind a carrier reference. The
// audit exchange carries a size descriptor instead of the binary body.
func (c *Client) FetchLabel(ctx context.Context, labelURL string) ([]byte, ports.Exchange, error) {
	if labelURL == "" {
		return nil, ports.Exchange{}, errs.NewValueIsRequiredError("labelURL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, labelURL, nil)
	if err != nil {
		return nil, ports.Exchange{}, errs.NewTransportErrorWithCause(serviceName, "FetchLabel", 0, err)
	}
	req.SetBasicAuth(c.apiUser, c.apiPassword)
	req.Header.Set("Accept", labelContentType)

	exchange := ports.Exchange{RequestPayload: labelURL}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exchange, errs.NewTransportErrorWithCause(serviceName, "FetchLabel", 0, err)
	}
	defer resp.Body.Close()

	exchange.StatusCode = resp.StatusCode

	artifact, err := io.ReadAll(io.LimitReader(resp.Body, maxLabelBytes))
	if err != nil {
		return nil, exchange, errs.NewTransportErrorWithCause(serviceName, "FetchLabel", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		exchange.ResponseBody = string(artifact)
		return nil, exchange, errs.NewTransportError(serviceName, "FetchLabel", resp.StatusCode)
	}

	exchange.ResponseBody = fmt.Sprintf("%s, %d bytes", labelContentType, len(artifact))
	return artifact, exchange, nil
}

// VoidShipment cancels a shipment at the carrier with a DELETE on its
// resource reference.
func (c *Client) VoidShipment(ctx context.Context, shipmentURL string) (ports.Exchange, error) {
	if shipmentURL == "" {
		return ports.Exchange{}, errs.NewValueIsRequiredError("shipmentURL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, shipmentURL, nil)
	if err != nil {
		return ports.Exchange{}, errs.NewTransportErrorWithCause(serviceName, "VoidShipment", 0, err)
	}
	req.SetBasicAuth(c.apiUser, c.apiPassword)
	req.Header.Set("Accept", shipmentContentType)

	return c.execute(req, shipmentURL, "VoidShipment", maxResponseBytes)
}

func (c *Client) execute(req *http.Request, requestPayload, operation string, limit int64) (ports.Exchange, error) {
	exchange := ports.Exchange{RequestPayload: requestPayload}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exchange, errs.NewTransportErrorWithCause(serviceName, operation, 0, err)
	}
	defer resp.Body.Close()

	exchange.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return exchange, errs.NewTransportErrorWithCause(serviceName, operation, resp.StatusCode, err)
	}
	exchange.ResponseBody = string(body)

	if resp.StatusCode >= 400 {
		return exchange, errs.NewTransportError(serviceName, operation, resp.StatusCode)
	}

	return exchange, nil
}
