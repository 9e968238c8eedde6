// Package api — тонкий JSON-клиент к серверу MovieKeeper.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError — расшифрованный ошибочный ответ сервера
// ({success:false, message, ...} + HTTP-статус).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// errEnvelope mirrors the server's error body.
type errEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client выполняет запросы к одному базовому URL.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// GetJSON выполняет GET и декодирует успешный ответ в out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON выполняет POST с JSON-телом (payload может быть nil).
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPost, path, payload, out)
}

// PatchJSON выполняет PATCH с JSON-телом.
func (c *Client) PatchJSON(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPatch, path, payload, out)
}

// DeleteJSON выполняет DELETE.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// пытаемся вытащить message из конверта; сырое тело — фолбэк
		var env errEnvelope
		msg := string(raw)
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Message != "" {
			msg = env.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
