// Package client implements the HTTP client for the LeadMart API.
//
// Every operation is a thin wrapper choosing a verb, a path, an optional
// JSON body and a decoding mode. A bearer token is attached whenever the
// token source has one at call time and omitted entirely otherwise; the
// catalog endpoints are intentionally unauthenticated.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource interface {
	Token() (string, error)
}

// Client represents an HTTP client for the LeadMart API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client against the given base URL.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// AuthUser is the login success payload.
type AuthUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// LeadBundle is a purchasable batch of contact records.
type LeadBundle struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Industry     string  `json:"industry"`
	Region       string  `json:"region"`
	LeadCount    int     `json:"leadCount"`
	PricePerLead float64 `json:"pricePerLead"`
	Description  string  `json:"description"`
}

// Purchase is a completed lead-bundle purchase.
type Purchase struct {
	ID           int     `json:"id"`
	LeadBundleID int     `json:"leadBundleId"`
	BundleTitle  string  `json:"bundleTitle"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

// CustomLead is a bespoke lead-batch request.
type CustomLead struct {
	ID              int     `json:"id"`
	Industry        string  `json:"industry"`
	Location        string  `json:"location"`
	Quantity        int     `json:"quantity"`
	AdditionalNotes string  `json:"additionalNotes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatedAt       string  `json:"createdAt"`
}

// Refund is a refund request against a purchase.
type Refund struct {
	ID         int    `json:"id"`
	PurchaseID int    `json:"purchaseId"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// SampleRecord is a single preview lead. Records are passed through as
// received, never validated.
type SampleRecord map[string]any

// LeadFilter narrows the catalog listing.
type LeadFilter struct {
	Industry string
	Region   string
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the user identity plus bearer token.
func (c *Client) Login(email, password string) (*AuthUser, error) {
	var user AuthUser
	if err := c.doJSON(http.MethodPost, "/api/auth/login", credentials{email, password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account. The success payload is backend-defined and
// ignored; only acceptance matters.
func (c *Client) Register(email, password string) error {
	return c.doJSON(http.MethodPost, "/api/auth/register", credentials{email, password}, nil)
}

// ListLeads returns the lead-bundle catalog, optionally filtered.
func (c *Client) ListLeads(filter LeadFilter) ([]LeadBundle, error) {
	params := url.Values{}
	if filter.Industry != "" {
		params.Set("industry", filter.Industry)
	}
	if filter.Region != "" {
		params.Set("region", filter.Region)
	}

	path := "/api/leads"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var bundles []LeadBundle
	if err := c.doJSON(http.MethodGet, path, nil, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

// LeadSample returns preview records for a bundle.
func (c *Client) LeadSample(id int) ([]SampleRecord, error) {
	var records []SampleRecord
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/api/leads/%d/sample", id), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreatePurchase buys a quantity of leads from a bundle.
func (c *Client) CreatePurchase(leadBundleID, quantity int) (*Purchase, error) {
	body := struct {
		LeadBundleID int `json:"leadBundleId"`
		Quantity     int `json:"quantity"`
	}{leadBundleID, quantity}

	var purchase Purchase
	if err := c.doJSON(http.MethodPost, "/api/purchases", body, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// PurchaseHistory returns the caller's past purchases.
func (c *Client) PurchaseHistory() ([]Purchase, error) {
	var purchases []Purchase
	if err := c.doJSON(http.MethodGet, "/api/purchases/history", nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// DownloadPurchase returns the purchased data file as raw bytes.
func (c *Client) DownloadPurchase(id int) ([]byte, error) {
	return c.doBytes(http.MethodGet, fmt.Sprintf("/api/purchases/%d/download", id))
}

// CustomLeadRequest is the body for creating a custom-lead request.
type CustomLeadRequest struct {
	Industry        string `json:"industry" yaml:"industry"`
	Location        string `json:"location" yaml:"location"`
	Quantity        int    `json:"quantity" yaml:"quantity"`
	AdditionalNotes string `json:"additionalNotes" yaml:"additionalNotes"`
}

// CreateCustomLead submits a custom-lead request.
func (c *Client) CreateCustomLead(req CustomLeadRequest) (*CustomLead, error) {
	var lead CustomLead
	if err := c.doJSON(http.MethodPost, "/api/custom-leads", req, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListCustomLeads returns the caller's custom-lead requests.
func (c *Client) ListCustomLeads() ([]CustomLead, error) {
	var leads []CustomLead
	if err := c.doJSON(http.MethodGet, "/api/custom-leads", nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// CustomLeadSample returns preview records for a fulfilled request.
func (c *Client) CustomLeadSample(id int) ([]SampleRecord, error) {
	var records []SampleRecord
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/api/custom-leads/%d/sample", id), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ConfirmCustomLead accepts a quoted custom-lead request.
func (c *Client) ConfirmCustomLead(id int) (*CustomLead, error) {
	var lead CustomLead
	if err := c.doJSON(http.MethodPost, fmt.Sprintf("/api/custom-leads/%d/confirm", id), nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// DownloadCustomLead returns the assembled data file as raw bytes.
func (c *Client) DownloadCustomLead(id int) ([]byte, error) {
	return c.doBytes(http.MethodGet, fmt.Sprintf("/api/custom-leads/%d/download", id))
}

// RefundRequest is the body for creating a refund request.
type RefundRequest struct {
	PurchaseID int    `json:"purchaseId"`
	Reason     string `json:"reason"`
	SampleData string `json:"sampleData"`
}

// CreateRefund submits a refund request for a purchase.
func (c *Client) CreateRefund(req RefundRequest) (*Refund, error) {
	var refund Refund
	if err := c.doJSON(http.MethodPost, "/api/refunds", req, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// ListRefunds returns the caller's refund requests.
func (c *Client) ListRefunds() ([]Refund, error) {
	var refunds []Refund
	if err := c.doJSON(http.MethodGet, "/api/refunds", nil, &refunds); err != nil {
		return nil, err
	}
	return refunds, nil
}

// doJSON performs a request and decodes a JSON response into out, which
// may be nil when the body does not matter.
func (c *Client) doJSON(method, path string, body, out any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// doBytes performs a request and returns the raw response body.
func (c *Client) doBytes(method, path string) ([]byte, error) {
	resp, err := c.do(method, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", ulid.Make().String())

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to load token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// checkStatus turns a non-2xx response into an APIError carrying the
// backend message when one is present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err == nil {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
