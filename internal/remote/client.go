package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

const defaultTimeout = 30 * time.Second

// envelope is the response frame every endpoint uses. A success=false frame
// and a transport error are the same failure class to callers.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration // per-request; applied on top of the caller's context
	HTTPClient *http.Client
	Log        *logrus.Logger
}

// Client is the typed HTTP client for the remote cart/catalog/order service.
// Outbound requests run through a circuit breaker so a dead upstream fails
// fast instead of holding every shopper on the transport timeout.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*http.Response]
	log     *logrus.Entry
}

func NewClient(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name: "remote-cart-api",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		log: log.WithField("component", "remote"),
	}
}

func (c *Client) GetCart(ctx context.Context, sess domain.Session) (*RawCart, error) {
	var cart RawCart
	if err := c.do(ctx, sess, http.MethodGet, "cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddItem(ctx context.Context, sess domain.Session, productID string) (*RawCart, error) {
	var cart RawCart
	body := map[string]string{"productId": productID}
	if err := c.do(ctx, sess, http.MethodPost, "cart", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateQuantity(ctx context.Context, sess domain.Session, lineItemID string, quantity int) (*RawCart, error) {
	var cart RawCart
	body := map[string]int{"quantity": quantity}
	path := "cart/" + url.PathEscape(lineItemID) + "/quantity"
	if err := c.do(ctx, sess, http.MethodPut, path, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveItem(ctx context.Context, sess domain.Session, lineItemID string) (*RawCart, error) {
	var cart RawCart
	if err := c.do(ctx, sess, http.MethodDelete, "cart/"+url.PathEscape(lineItemID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ClearCart(ctx context.Context, sess domain.Session) error {
	return c.do(ctx, sess, http.MethodDelete, "cart/clear", nil, nil)
}

func (c *Client) Checkout(ctx context.Context, sess domain.Session, req CheckoutRequest) (*RawOrder, error) {
	var order RawOrder
	if err := c.do(ctx, sess, http.MethodPost, "checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]RawProduct, error) {
	var products []RawProduct
	if err := c.do(ctx, domain.Session{}, http.MethodGet, "products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*RawProduct, error) {
	var product RawProduct
	if err := c.do(ctx, domain.Session{}, http.MethodGet, "products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetProductsByCategory(ctx context.Context, category string) ([]RawProduct, error) {
	var products []RawProduct
	path := "products/category/" + url.PathEscape(category)
	if err := c.do(ctx, domain.Session{}, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetOrders(ctx context.Context, sess domain.Session) ([]RawOrder, error) {
	var orders []RawOrder
	if err := c.do(ctx, sess, http.MethodGet, "orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, sess domain.Session, orderID string) (*RawOrder, error) {
	var order RawOrder
	if err := c.do(ctx, sess, http.MethodGet, "order/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, sess domain.Session, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if sess.UserID != "" {
		req.Header.Set("X-User-ID", sess.UserID)
	}
	if sess.Token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sess.Token})
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpc.Do(req)
	})
	if err != nil {
		c.log.WithError(err).WithField("path", path).Warn("remote call failed")
		return &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 500 {
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode >= 400 {
		return &Error{Kind: KindRequest, StatusCode: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "malformed response body", Err: decodeErr}
	}
	if !env.Success {
		return &Error{Kind: KindRequest, StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "malformed response data", Err: err}
		}
	}
	return nil
}
