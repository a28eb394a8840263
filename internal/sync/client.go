// Package sync implements the remote cache protocol used to mirror a timer
// collection across devices. The remote store is a generic key/value cache:
// records are addressed by a user-chosen sync ID, protected by a password,
// and expire server-side after a TTL.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"timepulse/internal/domain"
	"timepulse/internal/errors"
)

// Payload is the document mirrored to the remote cache.
type Payload struct {
	Timers   []domain.Timer `json:"timers"`
	ActiveID string         `json:"activeId,omitempty"`
}

// Credentials identify one remote record.
type Credentials struct {
	SyncID   string
	Password string
}

// IsZero reports whether no credentials are configured.
func (c Credentials) IsZero() bool {
	return c.SyncID == "" && c.Password == ""
}

// Client talks to the remote cache API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the cache API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type setRequest struct {
	Data        string `json:"data"`
	Password    string `json:"password"`
	SafeIP      string `json:"safeIP"`
	ExpiredTime int64  `json:"expiredTime"`
	UUID        string `json:"uuid"`
}

type getRequest struct {
	UUID         string `json:"uuid"`
	Password     string `json:"password"`
	ShouldDelete bool   `json:"shouldDelete"`
}

type apiResponse struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (r apiResponse) ok() bool {
	return r.Status == "success" || r.Code == 200
}

// Save uploads the payload under the given credentials. The record expires
// server-side after ttl.
func (c *Client) Save(ctx context.Context, creds Credentials, payload Payload, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "encode sync payload")
	}

	req := setRequest{
		Data:        string(data),
		Password:    creds.Password,
		SafeIP:      "*.*.*.*",
		ExpiredTime: ttl.Milliseconds(),
		UUID:        creds.SyncID,
	}

	resp, err := c.post(ctx, "set", req)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return errors.NewNetworkError("sync save", fmt.Errorf("remote rejected save: %s", resp.Message))
	}
	return nil
}

// Load fetches the payload stored under the given credentials. A missing or
// empty record yields a zero Payload and no error.
func (c *Client) Load(ctx context.Context, creds Credentials) (Payload, error) {
	req := getRequest{
		UUID:         creds.SyncID,
		Password:     creds.Password,
		ShouldDelete: false,
	}

	resp, err := c.post(ctx, "get", req)
	if err != nil {
		return Payload{}, err
	}
	if !resp.ok() {
		return Payload{}, errors.NewNetworkError("sync load", fmt.Errorf("remote rejected load: %s", resp.Message))
	}
	return decodePayload(resp.Data)
}

func (c *Client) post(ctx context.Context, mode string, body interface{}) (*apiResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "encode sync request")
	}

	url := fmt.Sprintf("%s?mode=%s", c.baseURL, mode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.NewNetworkError("sync "+mode, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewTimeoutError("sync "+mode, c.client.Timeout)
		}
		return nil, errors.NewNetworkError("sync "+mode, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("sync "+mode, err)
	}

	var resp apiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.NewNetworkError("sync "+mode, fmt.Errorf("malformed response: %w", err))
	}
	return &resp, nil
}

// decodePayload tolerates the two shapes the remote returns: the payload
// object directly, or the payload re-encoded as a JSON string.
func decodePayload(raw json.RawMessage) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Payload{}, nil
	}

	if trimmed[0] == '"' {
		var nested string
		if err := json.Unmarshal(trimmed, &nested); err != nil {
			return Payload{}, errors.NewNetworkError("sync load", fmt.Errorf("malformed nested data: %w", err))
		}
		trimmed = bytes.TrimSpace([]byte(nested))
		if len(trimmed) == 0 {
			return Payload{}, nil
		}
	}

	var payload Payload
	if trimmed[0] == '[' {
		// Older records stored the bare timer array.
		if err := json.Unmarshal(trimmed, &payload.Timers); err != nil {
			return Payload{}, errors.NewNetworkError("sync load", fmt.Errorf("malformed timer array: %w", err))
		}
		return payload, nil
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return Payload{}, errors.NewNetworkError("sync load", fmt.Errorf("malformed payload: %w", err))
	}
	return payload, nil
}
