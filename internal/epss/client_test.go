package epss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CVE-2024-0001,CVE-2024-0002", r.URL.Query().Get("cve"))
		fmt.Fprint(w, `{"data":[
			{"cve":"CVE-2024-0001","epss":"0.91","percentile":"0.99","date":"2024-05-01"},
			{"cve":"CVE-2024-0002","epss":"not-a-number","percentile":"0.1","date":"2024-05-01"}
		],"total":2}`)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), BaseURL: srv.URL}
	got, err := c.FetchScores(context.Background(), []string{"CVE-2024-0001", "CVE-2024-0002"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Data{
		"CVE-2024-0001": {Score: 0.91, Percentile: 0.99, Date: "2024-05-01"},
	}, got)
}

func TestFetchScoresBatches(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		ids := strings.Split(r.URL.Query().Get("cve"), ",")
		assert.LessOrEqual(t, len(ids), maxCVEsPerRequest)

		var entries []string
		for _, id := range ids {
			entries = append(entries, fmt.Sprintf(`{"cve":%q,"epss":"0.5","percentile":"0.5","date":"2024-05-01"}`, id))
		}
		fmt.Fprintf(w, `{"data":[%s]}`, strings.Join(entries, ","))
	}))
	defer srv.Close()

	ids := make([]string, 0, 170)
	for i := range 170 {
		ids = append(ids, fmt.Sprintf("CVE-2024-%04d", i))
	}

	c := &Client{HTTPClient: srv.Client(), BaseURL: srv.URL}
	got, err := c.FetchScores(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, got, 170)
	assert.Equal(t, int32(3), requests.Load())
}

func TestFetchScoresError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), BaseURL: srv.URL}
	got, err := c.FetchScores(context.Background(), []string{"CVE-2024-0001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Empty(t, got)
}

func TestFetchScoresNoIDs(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient, BaseURL: "http://127.0.0.1:0"}
	got, err := c.FetchScores(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
