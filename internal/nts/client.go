package nts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/comigor/korea-opendata-go/internal/apperr"
	"github.com/comigor/korea-opendata-go/internal/fetch"
	"github.com/comigor/korea-opendata-go/internal/logger"
)

const (
	msgRequestFailed = "국세청 API 요청에 실패했습니다."
	msgBadResponse   = "국세청 API 응답을 해석할 수 없습니다."
)

// statusOK is the status_code of a successful reply.
const statusOK = "OK"

// Client is a nts-businessman client.
type Client struct {
	baseURL string
	keys    fetch.KeyProvider
	http    *fetch.Client
}

// NewClient creates a new Client
func NewClient(baseURL string, keys fetch.KeyProvider, hc *fetch.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		keys:    keys,
		http:    hc,
	}
}

// Status looks up the operating state of each registration number.
func (c *Client) Status(ctx context.Context, numbers []string) (*StatusResponse, error) {
	var out StatusResponse
	body := struct {
		BNo []string `json:"b_no"`
	}{BNo: numbers}
	if err := c.post(ctx, "status", body, &out); err != nil {
		return nil, err
	}
	if err := checkStatusCode(out.StatusCode); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate checks each business against the registry.
func (c *Client) Validate(ctx context.Context, businesses []BusinessInfo) (*ValidateResponse, error) {
	var out ValidateResponse
	body := struct {
		Businesses []BusinessInfo `json:"businesses"`
	}{Businesses: businesses}
	if err := c.post(ctx, "validate", body, &out); err != nil {
		return nil, err
	}
	if err := checkStatusCode(out.StatusCode); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	key, err := c.keys.APIKey()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return apperr.Internal("encode request", err)
	}

	u := fmt.Sprintf("%s/%s?serviceKey=%s", c.baseURL, endpoint, url.QueryEscape(key))
	resp, err := c.http.Do(ctx, http.MethodPost, u, payload)
	if err != nil {
		logger.L.Error("nts request failed", "endpoint", endpoint, "error", err)
		return apperr.Upstream(msgRequestFailed, err)
	}
	if !resp.OK() {
		logger.L.Error("nts api error", "endpoint", endpoint, "status", resp.StatusCode, "body", string(resp.Body))
		return apperr.Upstream(msgRequestFailed, fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		logger.L.Error("nts response is not valid json", "endpoint", endpoint, "error", err)
		return apperr.Upstream(msgBadResponse, err)
	}
	return nil
}

func checkStatusCode(code string) error {
	if code == "" || code == statusOK {
		return nil
	}
	logger.L.Error("nts rejected request", "status_code", code)
	return apperr.Upstream(msgRequestFailed, fmt.Errorf("status_code %s", code))
}
