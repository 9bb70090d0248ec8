package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONClient_RoundTrip(t *testing.T) {
	mock := NewMockHTTPClient().AddResponse(http.StatusCreated, `{"id":"p-1"}`)
	c := NewJSONClient("http://planner:8080/", mock)

	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), http.MethodPost, "/api/plans", map[string]string{"rig": "van"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)

	require.Equal(t, 1, mock.RequestCount())
	req := mock.GetRequest(0)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://planner:8080/api/plans", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rig":"van"}`, string(body))
}

func TestJSONClient_StatusError(t *testing.T) {
	mock := NewMockHTTPClient().
		AddResponse(http.StatusUnprocessableEntity, `{"error":"geometry error: no overlap"}`).
		AddResponse(http.StatusBadGateway, "upstream down\n")
	c := NewJSONClient("http://planner", mock)

	err := c.Do(context.Background(), http.MethodGet, "/api/plan", nil, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, "geometry error: no overlap", se.Message)

	err = c.Do(context.Background(), http.MethodGet, "/api/plan", nil, nil)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upstream down", se.Message)
	assert.Equal(t, "http 502: upstream down", se.Error())
}

func TestJSONClient_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	c := NewJSONClient("http://planner", NewMockHTTPClient().AddErrorResponse(boom))

	err := c.Do(context.Background(), http.MethodGet, "/api/plan", nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestJSONClient_BadJSON(t *testing.T) {
	c := NewJSONClient("http://planner", NewMockHTTPClient().AddResponse(http.StatusOK, "{"))

	var out map[string]any
	assert.Error(t, c.Do(context.Background(), http.MethodGet, "/api/plan", nil, &out))
}

func TestJSONClient_RealServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONOK(w, map[string]string{"path": r.URL.Path})
	}))
	defer srv.Close()

	var out map[string]string
	require.NoError(t, NewJSONClient(srv.URL, nil).Do(context.Background(), http.MethodGet, "/api/rig", nil, &out))
	assert.Equal(t, "/api/rig", out["path"])
}

func TestMockHTTPClient_DrainedQueue(t *testing.T) {
	mock := NewMockHTTPClient()
	req := httptest.NewRequest(http.MethodGet, "http://x/", nil)

	resp, err := mock.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, mock.GetRequest(5))
}
