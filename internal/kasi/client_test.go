package kasi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comigor/korea-opendata-go/internal/apperr"
	"github.com/comigor/korea-opendata-go/internal/fetch"
)

const novemberJSON = `{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL SERVICE."},
"body":{"items":{"item":{"dateKind":"01","dateName":"추석","isHoliday":"Y","locdate":20251006,"seq":1}},
"numOfRows":100,"pageNo":1,"totalCount":1}}}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", fetch.StaticKey("k+y/="), fetch.New(time.Second))
}

func TestClientFetch_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/getRestDeInfo", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "k+y/=", q.Get("serviceKey"))
		assert.Equal(t, "2025", q.Get("solYear"))
		assert.Equal(t, "03", q.Get("solMonth"))
		assert.Equal(t, "100", q.Get("numOfRows"))
		assert.Equal(t, "json", q.Get("_type"))
		w.Write([]byte(novemberJSON))
	})

	env, err := c.Fetch(t.Context(), "getRestDeInfo", 2025, 3)
	require.NoError(t, err)
	found, ok := env.Outcome().(Found)
	require.True(t, ok)
	require.Len(t, found.Items, 1)
	assert.Equal(t, Item{DateName: "추석", Locdate: 20251006, IsHoliday: "Y"}, found.Items[0])
}

func TestClientFetch_NoMonth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, has := r.URL.Query()["solMonth"]
		assert.False(t, has)
		w.Write([]byte(novemberJSON))
	})
	_, err := c.Fetch(t.Context(), "get24DivisionsInfo", 2025, 0)
	require.NoError(t, err)
}

func TestClientFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"non-2xx", http.StatusInternalServerError, "SERVICE ERROR", msgRequestFailed},
		{"xml declaration", http.StatusOK, `<?xml version="1.0"?><OpenAPI_ServiceResponse/>`, msgXMLResponse},
		{"bare xml", http.StatusOK, `<OpenAPI_ServiceResponse><cmmMsgHeader/></OpenAPI_ServiceResponse>`, msgXMLResponse},
		{"malformed json", http.StatusOK, `{"response":`, msgBadResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(t.Context(), "getRestDeInfo", 2025, 1)
			require.Error(t, err)
			assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.NotContains(t, err.Error(), "SERVICE ERROR")
		})
	}
}

type failingKeys struct{}

func (failingKeys) APIKey() (string, error) { return "", apperr.Configuration("no key") }

func TestClientFetch_MissingKey(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(srv.URL, failingKeys{}, fetch.New(time.Second))
	_, err := c.Fetch(t.Context(), "getRestDeInfo", 2025, 1)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
	assert.False(t, called)
}

func TestClientFetch_Redirect(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://example.invalid/", http.StatusMovedPermanently)
	})
	_, err := c.Fetch(t.Context(), "getRestDeInfo", 2025, 1)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	assert.True(t, errors.Is(err, fetch.ErrRedirect))
}
