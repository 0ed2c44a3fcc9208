package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hhscout-engine/internal/config"
)

func testClient(baseURL string) *Client {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.RequestsPerSecond = 1000 // keep the limiter out of the way
	return NewClient(cfg, "")
}

func TestCollectAllWalksPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vacancies", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprintf(w, `{"items":[{"id":"%d"}],"found":3,"pages":3,"page":%d}`, page, page)
	}))
	defer srv.Close()

	var pages []int
	raws, err := testClient(srv.URL).CollectAll(context.Background(), SearchParams{Text: "go", PerPage: 1}, 10, false,
		func(page, totalPages, collected int) {
			pages = append(pages, page)
			assert.Equal(t, 3, totalPages)
		})
	require.NoError(t, err)
	assert.Len(t, raws, 3)
	assert.Equal(t, []int{1, 2, 3}, pages)
}

func TestCollectAllStopsAtMaxPages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"items":[{"id":"1"}],"found":100,"pages":100,"page":0}`)
	}))
	defer srv.Close()

	raws, err := testClient(srv.URL).CollectAll(context.Background(), SearchParams{Text: "go"}, 2, false, nil)
	require.NoError(t, err)
	assert.Len(t, raws, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCollectAllStopsOnEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[],"found":0,"pages":0,"page":0}`)
	}))
	defer srv.Close()

	raws, err := testClient(srv.URL).CollectAll(context.Background(), SearchParams{Text: "nothing"}, 5, false, nil)
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestCollectAllSwapsSummariesForDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"id":"10"},{"id":"11"}],"found":2,"pages":1,"page":0}`)
	})
	mux.HandleFunc("/vacancies/10", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"10","description":"full record"}`)
	})
	mux.HandleFunc("/vacancies/11", func(w http.ResponseWriter, r *http.Request) {
		// Detail fetch fails; the summary must survive.
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	raws, err := testClient(srv.URL).CollectAll(context.Background(), SearchParams{Text: "go"}, 1, true, nil)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	var first struct {
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(raws[0], &first))
	assert.Equal(t, "full record", first.Description)
	assert.JSONEq(t, `{"id":"11"}`, string(raws[1]))
}

func TestGetRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"id":"1"}`)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).get(context.Background(), "vacancies/1", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoOnceSendsUserAgentAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hhscout-engine/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL
	c := NewClient(cfg, "secret")
	_, err := c.doOnce(context.Background(), srv.URL+"/vacancies")
	require.NoError(t, err)
}
