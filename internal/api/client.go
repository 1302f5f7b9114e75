package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/models"
)

const (
	DefaultBaseURL    = "http://localhost:8080"
	DefaultCollection = "/api/users"
	DefaultTimeout    = 30 * time.Second
	DefaultUserAgent  = "clientdesk/1.0"

	// DefaultMaxResponseSize leaves room for a collection of records
	// carrying data-URL photos.
	DefaultMaxResponseSize = 64 << 20
)

// Client talks to the REST collection. Calls are never retried; a failed
// call is reported to the caller and that is the end of it.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *zap.Logger
	mu         sync.RWMutex
	status     ConnectionStatus
}

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Collection == "" {
		config.Collection = DefaultCollection
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.MaxResponseSize <= 0 {
		config.MaxResponseSize = DefaultMaxResponseSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(base.String(), "/")
	config.Collection = "/" + strings.Trim(config.Collection, "/")

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     logger.Named("api"),
		status: ConnectionStatus{
			BaseURL:     config.BaseURL,
			LastChecked: time.Now(),
		},
	}, nil
}

func (c *Client) CollectionURL() string {
	return c.config.BaseURL + c.config.Collection
}

func (c *Client) itemURL(id int64) string {
	return c.CollectionURL() + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) GetStatus() ConnectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

func (c *Client) updateStatus(connected bool, httpStatus int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Connected = connected
	c.status.LastStatus = httpStatus
	c.status.LastChecked = time.Now()
	c.status.LastError = ""
	if err != nil {
		c.status.LastError = err.Error()
	}
}

// List fetches the whole collection in server order.
func (c *Client) List(ctx context.Context) ([]models.Record, error) {
	body, err := c.do(ctx, "list", http.MethodGet, c.CollectionURL(), nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecordList(body, c.warn)
	if err != nil {
		return nil, NewDecodeError("list", err)
	}

	c.logger.Debug("collection loaded", zap.Int("records", len(records)))
	return records, nil
}

// Create posts a new record and returns it with the id the server assigned.
func (c *Client) Create(ctx context.Context, record models.Record) (models.Record, error) {
	payload, err := encodeRecord(record)
	if err != nil {
		return models.Record{}, NewError(ErrValidation, "create", encodeFailedMessage, err)
	}

	body, err := c.do(ctx, "create", http.MethodPost, c.CollectionURL(), payload)
	if err != nil {
		return models.Record{}, err
	}

	record.ID = 0
	created, err := decodeWriteResponse(body, record, c.warn)
	if err != nil {
		return models.Record{}, NewDecodeError("create", err)
	}

	c.logger.Info("record created", zap.Int64("id", created.ID))
	return created, nil
}

// Update replaces every mutable field of an existing record.
func (c *Client) Update(ctx context.Context, record models.Record) (models.Record, error) {
	if record.ID <= 0 {
		return models.Record{}, NewValidationError(missingIDMessage)
	}

	payload, err := encodeRecord(record)
	if err != nil {
		return models.Record{}, NewError(ErrValidation, "update", encodeFailedMessage, err)
	}

	body, err := c.do(ctx, "update", http.MethodPut, c.itemURL(record.ID), payload)
	if err != nil {
		return models.Record{}, err
	}

	updated, err := decodeWriteResponse(body, record, c.warn)
	if err != nil {
		return models.Record{}, NewDecodeError("update", err)
	}
	// The id in the path is authoritative.
	updated.ID = record.ID

	c.logger.Info("record updated", zap.Int64("id", updated.ID))
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError(missingIDMessage)
	}

	if _, err := c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil); err != nil {
		return err
	}

	c.logger.Info("record deleted", zap.Int64("id", id))
	return nil
}

func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, NewError(ErrTransport, op, "failed to build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", target),
		zap.String("request_id", requestID),
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.updateStatus(false, 0, err)
		c.logger.Warn("request failed", append(fields, zap.Duration("elapsed", time.Since(started)), zap.Error(err))...)
		classified := ClassifyError(err)
		classified.Op = op
		return nil, classified
	}
	defer resp.Body.Close()

	// One byte past the limit tells a full body from a cut one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseSize+1))
	fields = append(fields, zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))
	if err != nil {
		c.updateStatus(false, resp.StatusCode, err)
		c.logger.Warn("failed to read response", append(fields, zap.Error(err))...)
		return nil, NewTransportError(op, err)
	}
	if int64(len(body)) > c.config.MaxResponseSize {
		tooLarge := NewTooLargeError(op, c.config.MaxResponseSize)
		c.updateStatus(true, resp.StatusCode, tooLarge)
		c.logger.Warn("response too large", append(fields, zap.Int64("limit", c.config.MaxResponseSize))...)
		return nil, tooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := NewStatusError(op, resp.StatusCode, string(body))
		c.updateStatus(true, resp.StatusCode, statusErr)
		c.logger.Warn("request rejected", append(fields, zap.String("kind", string(statusErr.Kind)), zap.String("server_text", statusErr.ServerText))...)
		return nil, statusErr
	}

	c.updateStatus(true, resp.StatusCode, nil)
	c.logger.Debug("request completed", fields...)
	return body, nil
}

func (c *Client) warn(message string) {
	c.logger.Warn(message)
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
