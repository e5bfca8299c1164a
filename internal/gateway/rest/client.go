// Package rest — HTTP/JSON адаптер удалённого шлюза.
package rest

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

	"github.com/google/uuid"

	"github.com/Spok95/empresa-pos/internal/auth"
	"github.com/Spok95/empresa-pos/internal/gateway"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *auth.Session
	log     *slog.Logger
	now     func() time.Time
}

// NewClient; session может быть nil — тогда запросы идут без Authorization.
func NewClient(baseURL string, timeout time.Duration, session *auth.Session, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
		log:     log,
		now:     time.Now,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if c.session != nil && c.session.Expired(c.now()) {
		return gateway.Wrap(op, gateway.ErrAuth, "session expired", nil)
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", op, "request_id", reqID, "err", err)
		return gateway.Wrap(op, gateway.ErrNetwork, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gateway.Wrap(op, gateway.ErrNetwork, "read body", err)
	}
	c.log.Debug("request done", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "request_id", reqID, "latency", time.Since(start))

	if resp.StatusCode >= 300 {
		return classifyStatus(op, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return gateway.Wrap(op, gateway.ErrNetwork, "empty response", nil)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return gateway.Wrap(op, gateway.ErrNetwork, "decode response", err)
	}
	return nil
}

func classifyStatus(op string, status int, raw []byte) error {
	var eb errorBody
	detail := ""
	if json.Unmarshal(raw, &eb) == nil {
		detail = eb.Message
		if detail == "" {
			detail = eb.Error
		}
	}
	cause := errors.New(http.StatusText(status))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return gateway.Wrap(op, gateway.ErrAuth, detail, cause)
	case status == http.StatusNotFound:
		return gateway.Wrap(op, gateway.ErrNotFound, detail, cause)
	case status == http.StatusBadRequest || status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return gateway.Wrap(op, gateway.ErrValidation, detail, cause)
	default:
		return gateway.Wrap(op, gateway.ErrNetwork, detail, cause)
	}
}
