package ingest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
	"go.uber.org/zap"
)

// Client reads results from the SUT REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns every result of the source, or only the one with the given id.
func (c *Client) Fetch(ctx context.Context, source Source, id string) ([]Record, error) {
	logger := utils.GetLogger(ctx)

	endpoint := c.baseURL + source.Path()
	if id != "" {
		endpoint += "/" + url.PathEscape(id)
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		logger.Error("fetch results failed", zap.String("url", endpoint), zap.Error(err))
		return nil, err
	}

	records, err := decodeRecords(source, body)
	if err != nil {
		return nil, err
	}

	logger.Info("fetched results", zap.String("url", endpoint), zap.Int("count", len(records)))
	return records, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ewrap.Wrapf(common.ErrorTransportFailure, "GET %s: %v", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ewrap.Wrapf(common.ErrorTransportFailure, "GET %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ewrap.Wrapf(common.ErrorTransportFailure, "GET %s: %v", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ewrap.Wrapf(common.ErrorTransportFailure, "GET %s: status=%d body=%s",
			endpoint, resp.StatusCode, string(body))
	}
	return body, nil
}

// decodeRecords accepts a single result object or a list of them.
func decodeRecords(source Source, body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ewrap.Wrap(common.ErrorMalformedResult, "empty response")
	}
	list := trimmed[0] == '['

	var err error
	res := []Record{}
	switch source {
	case AnalyzerResults:
		if list {
			var results []*analyzerResult
			if err = json.Unmarshal(trimmed, &results); err == nil {
				for i, r := range results {
					if r == nil {
						return nil, ewrap.Wrapf(common.ErrorMalformedResult, "decode %s: null result at %d", source, i)
					}
					res = append(res, r)
				}
			}
		} else {
			result := &analyzerResult{}
			if err = json.Unmarshal(trimmed, result); err == nil {
				res = append(res, result)
			}
		}
	case RxFlows:
		if list {
			var flows []*rxFlow
			if err = json.Unmarshal(trimmed, &flows); err == nil {
				for i, f := range flows {
					if f == nil {
						return nil, ewrap.Wrapf(common.ErrorMalformedResult, "decode %s: null result at %d", source, i)
					}
					res = append(res, f)
				}
			}
		} else {
			flow := &rxFlow{}
			if err = json.Unmarshal(trimmed, flow); err == nil {
				res = append(res, flow)
			}
		}
	default:
		return nil, ewrap.Wrapf(common.ErrorInvalidValue, "source %q", source)
	}

	if err != nil {
		return nil, ewrap.Wrapf(common.ErrorMalformedResult, "decode %s: %v", source, err)
	}
	return res, nil
}
