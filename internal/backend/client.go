package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ListQuery is a generic list request against "{Entity}/GetList".
type ListQuery struct {
	Entity   string
	Select   []string
	Where    string
	SortOn   string
	Page     int
	PageSize int
}

// SaveRequest is a single create or update of a master record.
type SaveRequest struct {
	Path    string // relative to the base URL, e.g. "Job" or "bl"
	Method  string // http.MethodPost or http.MethodPut
	Payload any
}

// Client is the REST backend as seen by the forms.
type Client interface {
	// List runs a list query and returns the raw records. A 2xx body that
	// is not a JSON array yields an empty slice.
	List(ctx context.Context, q ListQuery) ([]json.RawMessage, error)

	// TypeValues fetches an enumerated value list, in document order.
	TypeValues(ctx context.Context, typeName string) ([]string, error)

	// GenerateJobNumber allocates a new human-readable job number.
	GenerateJobNumber(ctx context.Context) (string, error)

	// Save sends one create/update request. It is never retried.
	Save(ctx context.Context, req SaveRequest) (json.RawMessage, error)
}

// httpClient implements Client over net/http.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client for the configured backend.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// listRequest is the JSON body sent to "{Entity}/GetList".
type listRequest struct {
	Select   string `json:"select"`
	Where    string `json:"where"`
	SortOn   string `json:"sortOn"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// attemptResult is what a single HTTP round trip produced.
type attemptResult struct {
	status int
	body   []byte
}

func (c *httpClient) List(ctx context.Context, q ListQuery) ([]json.RawMessage, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = c.cfg.PageSize
	}
	body := listRequest{
		Select:   strings.Join(q.Select, ","),
		Where:    q.Where,
		SortOn:   q.SortOn,
		Page:     page,
		PageSize: size,
	}

	path := q.Entity + "/GetList"
	res, err := c.call(ctx, CallList, http.MethodPost, path, c.cfg.endpoint(path), body, c.cfg.ListRetries)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(res.body, &records); err != nil {
		return []json.RawMessage{}, nil
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func (c *httpClient) TypeValues(ctx context.Context, typeName string) ([]string, error) {
	u := c.cfg.typesEndpoint() + "?typeName=" + url.QueryEscape(typeName)
	res, err := c.call(ctx, CallTypeValues, http.MethodGet, "General/GetTypeValues", u, nil, c.cfg.ListRetries)
	if err != nil {
		return nil, err
	}
	values, err := orderedStringValues(res.body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return values, nil
}

func (c *httpClient) GenerateJobNumber(ctx context.Context) (string, error) {
	path := "Job/GenerateJobNumber"
	res, err := c.call(ctx, CallJobNumber, http.MethodGet, path, c.cfg.endpoint(path), nil, 0)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(res.body))
	var quoted string
	if err := json.Unmarshal([]byte(text), &quoted); err == nil {
		text = strings.TrimSpace(quoted)
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty job number", ErrInvalidResponse)
	}
	return text, nil
}

func (c *httpClient) Save(ctx context.Context, req SaveRequest) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	res, err := c.call(ctx, CallSave, method, req.Path, c.cfg.endpoint(req.Path), req.Payload, 0)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(res.body)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(res.body), nil
}

// call performs up to 1+retries attempts, each under its own timeout, and
// reports one CallEvent. Context cancellation by the caller stops retries.
func (c *httpClient) call(ctx context.Context, kind CallKind, method, path, target string, body any, retries int) (*attemptResult, error) {
	start := time.Now()

	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
	}

	var (
		lastErr  error
		res      *attemptResult
		attempts int
	)
	for attempts < 1+retries {
		attempts++
		res, lastErr = c.attempt(ctx, kind, method, target, data)
		if lastErr == nil || !retryable(lastErr) || ctx.Err() != nil {
			break
		}
	}

	event := CallEvent{
		Call:      kind,
		Method:    method,
		Path:      path,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   lastErr == nil,
		ErrorCode: errorCode(lastErr),
	}
	if res != nil {
		event.Status = res.status
	}
	c.observer.OnCallComplete(event)

	if lastErr == nil {
		return res, nil
	}
	if attempts > 1 && retryable(lastErr) {
		return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
	}
	return nil, lastErr
}

func (c *httpClient) attempt(parent context.Context, kind CallKind, method, target string, data []byte) (*attemptResult, error) {
	ctx, cancel := context.WithTimeout(parent, c.cfg.CallTimeout(kind))
	defer cancel()

	var reader io.Reader
	if data != nil {
		reader = bytes.NewReader(data)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if data != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json, text/plain")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if cerr := contextError(parent, ctx); cerr != nil {
			return nil, cerr
		}
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if cerr := contextError(parent, ctx); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("reading response: %w", err)
	}

	res := &attemptResult{status: httpResp.StatusCode, body: respBody}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return res, &APIError{Status: httpResp.StatusCode, Message: extractMessage(respBody)}
	}
	return res, nil
}

// contextError separates the caller giving up from the per-call deadline.
// Only the latter is a timeout.
func contextError(parent, ctx context.Context) error {
	if err := parent.Err(); err != nil {
		return fmt.Errorf("backend request aborted: %w", err)
	}
	if ctx.Err() != nil {
		return ErrTimeout
	}
	return nil
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELLED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.As(err, &apiErr):
		return "HTTP_" + fmt.Sprint(apiErr.Status)
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// orderedStringValues decodes a JSON object and returns its non-empty string
// values in document order.
func orderedStringValues(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	values := []string{}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			values = append(values, s)
		}
	}
	return values, nil
}
