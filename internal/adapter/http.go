// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/utils"
	"github.com/MKhiriev/mindful-sync/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.Address and
// configures the underlying HTTP client with the request timeout.
//
// Returns an error if adapterCfg.Address is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter].
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var loginResp models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&loginResp).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("%w: login request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(loginResp.Token) == "" {
		return "", fmt.Errorf("%w: empty token", ErrDecodingResponse)
	}

	h.SetToken(loginResp.Token)
	return h.Token(), nil
}

// Ping implements [ServerAdapter].
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

// BulkSync implements [ServerAdapter].
func (h *httpServerAdapter) BulkSync(ctx context.Context, collection models.Collection, items any) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.BulkSyncRequest{Items: items}).
		Post("/" + collection.String() + "/bulk_sync")
	if err != nil {
		return fmt.Errorf("%w: bulk sync %s: %w", ErrNetwork, collection, err)
	}

	return mapHTTPError(resp)
}

// Sync implements [ServerAdapter].
func (h *httpServerAdapter) Sync(ctx context.Context, collection models.Collection, since *time.Time) (models.SyncResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SyncRequest{LastSyncedAt: since}).
		Post("/" + collection.String() + "/sync")
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: sync %s: %w", ErrNetwork, collection, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResponse{}, err
	}

	var sr models.SyncResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	if sr.ServerTime.IsZero() {
		return models.SyncResponse{}, fmt.Errorf("%w: missing server_time", ErrDecodingResponse)
	}

	return sr, nil
}

// List implements [ServerAdapter].
func (h *httpServerAdapter) List(ctx context.Context, collection models.Collection) ([]json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).Get("/" + collection.String())
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrNetwork, collection, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}

	return items, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
