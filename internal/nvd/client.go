package nvd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"cvss-scorer/internal/httpclient"
)

const DefaultBaseURL = "https://services.nvd.nist.gov/rest/json/cves/2.0"

// ErrRateLimited is returned when NVD still answers 429 after retries.
var ErrRateLimited = errors.New("nvd rate limit (429)")

type metricEntry struct {
	Type     string `json:"type"`
	CVSSData struct {
		VectorString string `json:"vectorString"`
	} `json:"cvssData"`
}

type nvdResponse struct {
	Vulnerabilities []struct {
		CVE struct {
			Metrics struct {
				CVSSMetricV40 []metricEntry `json:"cvssMetricV40"`
				CVSSMetricV31 []metricEntry `json:"cvssMetricV31"`
				CVSSMetricV30 []metricEntry `json:"cvssMetricV30"`
				CVSSMetricV2  []metricEntry `json:"cvssMetricV2"`
			} `json:"metrics"`
		} `json:"cve"`
	} `json:"vulnerabilities"`
}

// Client fetches CVE data from NVD. Optional APIKey enables higher rate limits.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

// NewClient returns a client backed by the retrying HTTP client. apiKey is
// optional.
func NewClient(apiKey string) *Client {
	return &Client{
		HTTPClient: httpclient.New(httpclient.Options{}),
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
	}
}

// FetchVector returns the most recent CVSS vector NVD knows for the given
// CVE ID, preferring 4.0 over 3.1 over 3.0 over 2.0 and the Primary entry
// within a version. An empty string means NVD has no CVSS data for it.
func (c *Client) FetchVector(ctx context.Context, cveID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?cveId="+url.QueryEscape(cveID), nil)
	if err != nil {
		return "", errors.Wrap(err, "nvd request")
	}
	if c.APIKey != "" {
		req.Header.Set("apiKey", c.APIKey)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "nvd request")
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("nvd api: status %s", resp.Status)
	}
	var body nvdResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "nvd decode")
	}
	if len(body.Vulnerabilities) == 0 {
		return "", nil
	}
	metrics := body.Vulnerabilities[0].CVE.Metrics
	for _, entries := range [][]metricEntry{
		metrics.CVSSMetricV40,
		metrics.CVSSMetricV31,
		metrics.CVSSMetricV30,
		metrics.CVSSMetricV2,
	} {
		if v := pickVector(entries); v != "" {
			log.Debug().Str("cve", cveID).Str("vector", v).Msg("nvd vector")
			return strings.ReplaceAll(v, `\/`, "/"), nil
		}
	}
	return "", nil
}

// pickVector returns the Primary vector, or the first non-empty one.
func pickVector(entries []metricEntry) string {
	var first string
	for _, e := range entries {
		if e.CVSSData.VectorString == "" {
			continue
		}
		if strings.EqualFold(e.Type, "Primary") {
			return e.CVSSData.VectorString
		}
		if first == "" {
			first = e.CVSSData.VectorString
		}
	}
	return first
}
