package cart

// STOREFRONT CART CLIENT

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var ErrRejected = errors.New("cart rejected item")

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

type AddRequest struct {
	ID         int64
	Quantity   int
	Properties map[string]string
}

// LineItem is the subset of the /cart/add.js response we use.
type LineItem struct {
	ID         int64             `json:"id"`
	VariantID  int64             `json:"variant_id"`
	Key        string            `json:"key"`
	Title      string            `json:"title"`
	Quantity   int               `json:"quantity"`
	Price      int64             `json:"price"`
	Properties map[string]string `json:"properties"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBackOff overrides the retry policy. The factory is called once per request.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = f }
}

func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.newBackOff = func() backoff.BackOff {
			return backoff.WithMaxRetries(defaultBackOff(), n)
		}
	}
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
		newBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(defaultBackOff(), 4)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 300 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return b
}

// EncodeForm builds the cart form body: id, quantity and properties[key].
func EncodeForm(req AddRequest) url.Values {
	form := url.Values{}
	form.Set("id", strconv.FormatInt(req.ID, 10))
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	form.Set("quantity", strconv.Itoa(qty))
	for k, v := range req.Properties {
		form.Set(fmt.Sprintf("properties[%s]", k), v)
	}
	return form
}

// AddItem posts one line to the cart. Transport errors and 5xx/429 responses
// are retried; any other non-200 status fails immediately with ErrRejected.
func (c *Client) AddItem(ctx context.Context, req AddRequest) (*LineItem, error) {
	body := EncodeForm(req).Encode()

	var item LineItem
	attempt := 0
	operation := func() error {
		attempt++
		httpReq, err := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			c.baseURL+"/cart/add.js",
			strings.NewReader(body),
		)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("unexpected status: %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, readDescription(resp.Body)))
		}

		item = LineItem{}
		if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(c.newBackOff(), ctx),
		func(err error, next time.Duration) {
			c.logger.Warn("Cart add failed, retrying...",
				zap.Int64("product_id", req.ID),
				zap.Int("attempt", attempt),
				zap.Duration("next_attempt_in", next),
				zap.Error(err))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	c.logger.Info("Item added to cart",
		zap.Int64("product_id", req.ID),
		zap.Int64("line_id", item.ID),
		zap.Int("attempts", attempt))
	return &item, nil
}

// readDescription pulls the storefront's error description if there is one.
func readDescription(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Description string `json:"description"`
		Message     string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Description != "" {
			return payload.Description
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
