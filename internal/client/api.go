// Package client is the Go counterpart of the browser UI: a REST client, a
// reactive state store, a debouncer and the translator/history controllers
// built on them.
package client

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
)

// Record mirrors the server's JSON record.
type Record struct {
	ID             string `json:"id"`
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// Input is the body of create and update calls.
type Input struct {
	SourceText string `json:"source_text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// NetworkError is any failed call: Status is 0 when no response arrived.
type NetworkError struct {
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("network: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("network: status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("network: status %d", e.Status)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Backend is the REST surface the controllers depend on.
type Backend interface {
	Create(ctx context.Context, in Input) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, id string, in Input) (Record, error)
	Delete(ctx context.Context, id string) error
}

// DefaultServer is where the original UI expected the service.
const DefaultServer = "http://localhost:4000"

// API talks to the translation service over HTTP.
type API struct {
	baseURL        string
	client         *http.Client
	acceptLanguage string
}

// NewAPI returns a client for baseURL. A nil client uses one with a 60s timeout.
func NewAPI(baseURL string, client *http.Client) *API {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// WithLanguage sets the Accept-Language sent with every call.
func (a *API) WithLanguage(lang string) *API {
	a.acceptLanguage = lang
	return a
}

func (a *API) Create(ctx context.Context, in Input) (Record, error) {
	var out Record
	err := a.do(ctx, http.MethodPost, "/translate", in, &out)
	return out, err
}

func (a *API) List(ctx context.Context) ([]Record, error) {
	out := []Record{}
	if err := a.do(ctx, http.MethodGet, "/translations", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

func (a *API) Update(ctx context.Context, id string, in Input) (Record, error) {
	var out Record
	err := a.do(ctx, http.MethodPatch, "/translations/"+url.PathEscape(id), in, &out)
	return out, err
}

func (a *API) Delete(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/translations/"+url.PathEscape(id), nil, nil)
}

// do sends body as JSON and decodes the "data" envelope into out.
func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.acceptLanguage != "" {
		req.Header.Set("Accept-Language", a.acceptLanguage)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &NetworkError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &NetworkError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
