package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"

	"go.uber.org/zap"
)

// Client talks to the upstream HR/payroll REST API. The bearer token is
// attached to every request; the company identity travels both as a header
// and as a query parameter because upstream endpoints disagree on which one
// they read.
type Client struct {
	baseURL        string
	token          string
	httpc          *http.Client
	logger         *zap.Logger
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithUnauthorizedHook registers the session-invalidation side effect run on
// any 401 answer from upstream.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func NewClient(baseURL, token string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   http.DefaultClient,
		logger:  logger.Named("upstream"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchList GETs a list endpoint and unwraps whichever envelope shape it
// answered with. An unrecognized body resolves to an empty list, not an
// error; only transport and HTTP-level failures are returned.
func (c *Client) FetchList(ctx context.Context, path, companyID string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, path, companyID, nil)
	if err != nil {
		return nil, err
	}

	items, ok := DecodeList(body)
	if !ok {
		c.logger.Warn("unrecognized list envelope, resolving empty",
			zap.String("path", path),
			zap.Int("body_bytes", len(body)),
		)
		return nil, nil
	}
	return items, nil
}

// GetJSON GETs a single-entity endpoint.
func (c *Client) GetJSON(ctx context.Context, path, companyID string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, path, companyID, nil)
	if err != nil {
		return nil, err
	}
	return DecodeEntity(body), nil
}

// PostJSON POSTs a JSON payload and returns the unwrapped entity.
func (c *Client) PostJSON(ctx context.Context, path, companyID string, payload any) (json.RawMessage, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidInput, "payload is not serializable", http.StatusBadRequest)
	}

	body, err := c.do(ctx, http.MethodPost, path, companyID, encoded)
	if err != nil {
		return nil, err
	}
	return DecodeEntity(body), nil
}

// Delete issues a DELETE and discards the body.
func (c *Client) Delete(ctx context.Context, path, companyID string) error {
	_, err := c.do(ctx, http.MethodDelete, path, companyID, nil)
	return err
}

// PostBinary POSTs to a report endpoint and hands back the raw payload plus
// its content type. The payload is never interpreted here.
func (c *Client) PostBinary(ctx context.Context, path, companyID string, payload any) ([]byte, string, error) {
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, "", apperror.Wrap(err, apperror.CodeInvalidInput, "payload is not serializable", http.StatusBadRequest)
		}
	}

	body, contentType, err := c.doRaw(ctx, http.MethodPost, path, companyID, encoded)
	if err != nil {
		return nil, "", err
	}
	return body, contentType, nil
}

func (c *Client) do(ctx context.Context, method, path, companyID string, body []byte) ([]byte, error) {
	payload, _, err := c.doRaw(ctx, method, path, companyID, body)
	return payload, err
}

func (c *Client) doRaw(ctx context.Context, method, path, companyID string, body []byte) ([]byte, string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeInternalError, "invalid upstream URL", http.StatusInternalServerError)
	}
	if companyID != "" {
		q := u.Query()
		q.Set("companyId", companyID)
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, "", err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if companyID != "" {
		req.Header.Set("X-Company-ID", companyID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeUpstreamError, "payroll API request failed", http.StatusBadGateway)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeUpstreamError, "reading payroll API response failed", http.StatusBadGateway)
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, "", apperror.ErrUnauthorized
	case res.StatusCode == http.StatusNotFound:
		return nil, "", apperror.ErrNotFound
	case res.StatusCode >= 400:
		return nil, "", apperror.Wrap(
			fmt.Errorf("upstream answered %d: %s", res.StatusCode, truncate(payload, 256)),
			apperror.CodeUpstreamError,
			"The payroll API rejected the request",
			http.StatusBadGateway,
		)
	}

	return payload, res.Header.Get("Content-Type"), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
