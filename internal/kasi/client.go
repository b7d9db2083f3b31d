package kasi

import (
	"bytes"
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

// numOfRows is large enough for any single month or year of one category.
const numOfRows = 100

const (
	msgRequestFailed = "천문연구원 API 요청에 실패했습니다."
	msgXMLResponse   = "API가 XML 응답을 반환했습니다. JSON 응답을 기대했습니다."
	msgBadResponse   = "천문연구원 API 응답을 해석할 수 없습니다."
)

// Client is a SpcdeInfoService client.
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

// Fetch retrieves the special days of one endpoint. A month of 0 omits
// solMonth and lets upstream return the whole year.
func (c *Client) Fetch(ctx context.Context, endpoint string, year, month int) (*Envelope, error) {
	key, err := c.keys.APIKey()
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s?serviceKey=%s&solYear=%d&numOfRows=%d&_type=json",
		c.baseURL, endpoint, url.QueryEscape(key), year, numOfRows)
	if month > 0 {
		u += fmt.Sprintf("&solMonth=%02d", month)
	}

	resp, err := c.http.Do(ctx, http.MethodGet, u, nil)
	if err != nil {
		logger.L.Error("kasi request failed", "endpoint", endpoint, "year", year, "month", month, "error", err)
		return nil, apperr.Upstream(msgRequestFailed, err)
	}
	if !resp.OK() {
		logger.L.Error("kasi api error", "endpoint", endpoint, "status", resp.StatusCode, "body", string(resp.Body))
		return nil, apperr.Upstream(msgRequestFailed, fmt.Errorf("status %d", resp.StatusCode))
	}

	if body := bytes.TrimSpace(resp.Body); len(body) > 0 && body[0] == '<' {
		logger.L.Error("kasi returned xml", "endpoint", endpoint, "body", string(resp.Body))
		return nil, apperr.Upstream(msgXMLResponse, nil)
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		logger.L.Error("kasi response is not valid json", "endpoint", endpoint, "error", err)
		return nil, apperr.Upstream(msgBadResponse, err)
	}
	return &env, nil
}
