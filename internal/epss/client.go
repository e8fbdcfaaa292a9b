package epss

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"cvss-scorer/internal/httpclient"
)

const (
	DefaultBaseURL    = "https://api.first.org/data/v1/epss"
	maxCVEsPerRequest = 80
)

type epssResponse struct {
	Data []struct {
		CVE        string `json:"cve"`
		EPSS       string `json:"epss"`
		Date       string `json:"date"`
		Percentile string `json:"percentile"`
	} `json:"data"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Data holds EPSS score, percentile, and date for a CVE.
type Data struct {
	Score      float64
	Percentile float64
	Date       string
}

// Client fetches EPSS scores from the FIRST API.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient returns a client backed by the retrying HTTP client.
func NewClient() *Client {
	return &Client{
		HTTPClient: httpclient.New(httpclient.Options{}),
		BaseURL:    DefaultBaseURL,
	}
}

// FetchScores returns a map of CVE ID -> EPSS data for the given CVE IDs.
// IDs are sent in batches; on error the batches fetched so far are returned
// alongside it.
func (c *Client) FetchScores(ctx context.Context, cveIDs []string) (map[string]Data, error) {
	result := make(map[string]Data)
	for _, batch := range lo.Chunk(cveIDs, maxCVEsPerRequest) {
		got, err := c.fetchBatch(ctx, batch)
		if err != nil {
			return result, err
		}
		for k, v := range got {
			result[k] = v
		}
	}
	log.Debug().Int("requested", len(cveIDs)).Int("found", len(result)).Msg("epss scores fetched")
	return result, nil
}

func (c *Client) fetchBatch(ctx context.Context, cveIDs []string) (map[string]Data, error) {
	params := url.Values{}
	params.Set("cve", strings.Join(cveIDs, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "epss request")
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "epss request")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("epss api: status %s", resp.Status)
	}
	var body epssResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "epss decode")
	}
	out := make(map[string]Data)
	for _, d := range body.Data {
		score, err := strconv.ParseFloat(d.EPSS, 64)
		if err != nil {
			log.Debug().Str("cve", d.CVE).Str("epss", d.EPSS).Msg("skipping unparsable epss score")
			continue
		}
		percentile, _ := strconv.ParseFloat(d.Percentile, 64)
		out[d.CVE] = Data{Score: score, Percentile: percentile, Date: d.Date}
	}
	return out, nil
}
