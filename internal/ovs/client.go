package ovs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote OVS API. It holds no session state; the
// bearer token for protected endpoints is passed per call.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client: &http.Client{
			Transport: &headerTransport{Base: http.DefaultTransport},
			Timeout:   timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// headerTransport stamps every outgoing request with the accept headers
// and a correlation id.
type headerTransport struct {
	Base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return t.Base.RoundTrip(req)
}

func (c *Client) ListStores(ctx context.Context, filter StoreFilter) ([]Store, error) {
	q := url.Values{}
	if filter.State != "" {
		q.Set("state", filter.State)
	}
	if filter.Place != "" {
		q.Set("place", filter.Place)
	}
	var stores []Store
	if err := c.do(ctx, http.MethodGet, "/api/stores", q, "", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (c *Client) StoreVCDs(ctx context.Context, storeID string) ([]VCD, error) {
	var vcds []VCD
	path := fmt.Sprintf("/api/stores/%s/vcds", url.PathEscape(storeID))
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &vcds); err != nil {
		return nil, err
	}
	return vcds, nil
}

func (c *Client) SearchVCDs(ctx context.Context, name string) ([]VCD, error) {
	q := url.Values{}
	if name != "" {
		q.Set("vcdName", name)
	}
	var vcds []VCD
	if err := c.do(ctx, http.MethodGet, "/api/vcds/search", q, "", nil, &vcds); err != nil {
		return nil, err
	}
	return vcds, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", nil, "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (string, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", nil, "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) GetCart(ctx context.Context, token string) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, token, vcdID string, quantity int) error {
	body := map[string]any{"vcdId": vcdID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/api/cart", nil, token, body, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, token, vcdID string, quantity int) error {
	path := "/api/cart/" + url.PathEscape(vcdID)
	body := map[string]any{"quantity": quantity}
	return c.do(ctx, http.MethodPut, path, nil, token, body, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, token, vcdID string) error {
	path := "/api/cart/" + url.PathEscape(vcdID)
	return c.do(ctx, http.MethodDelete, path, nil, token, nil, nil)
}

func (c *Client) ConfirmOrder(ctx context.Context, token string, shipping Shipping) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/order/confirm", nil, token, shipping, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) MakePayment(ctx context.Context, token string, req PaymentRequest) (*PaymentResult, error) {
	var result PaymentResult
	if err := c.do(ctx, http.MethodPost, "/api/payment", nil, token, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateStore(ctx context.Context, token string, input StoreInput) error {
	return c.do(ctx, http.MethodPost, "/api/stores", nil, token, input, nil)
}

func (c *Client) UpdateStore(ctx context.Context, token, storeID string, input StoreInput) error {
	path := "/api/stores/" + url.PathEscape(storeID)
	return c.do(ctx, http.MethodPut, path, nil, token, input, nil)
}

func (c *Client) DeleteStore(ctx context.Context, token, storeID string) error {
	path := "/api/stores/" + url.PathEscape(storeID)
	return c.do(ctx, http.MethodDelete, path, nil, token, nil, nil)
}

func (c *Client) CreateVCD(ctx context.Context, token, storeID string, input VCDInput) error {
	path := fmt.Sprintf("/api/stores/%s/vcds", url.PathEscape(storeID))
	return c.do(ctx, http.MethodPost, path, nil, token, input, nil)
}

func (c *Client) UpdateVCD(ctx context.Context, token, storeID, vcdID string, input VCDInput) error {
	path := fmt.Sprintf("/api/stores/%s/vcds/%s", url.PathEscape(storeID), url.PathEscape(vcdID))
	return c.do(ctx, http.MethodPut, path, nil, token, input, nil)
}

func (c *Client) DeleteVCD(ctx context.Context, token, storeID, vcdID string) error {
	path := fmt.Sprintf("/api/stores/%s/vcds/%s", url.PathEscape(storeID), url.PathEscape(vcdID))
	return c.do(ctx, http.MethodDelete, path, nil, token, nil, nil)
}

// do performs one request/response round trip. Non-2xx responses are
// returned as *APIError with the best-effort message from the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = "request failed"
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
