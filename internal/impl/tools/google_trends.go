package tools

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const trendsDefaultBaseURL = "https://trends.google.com"

// GoogleTrendsTool reads interest-over-time data from the undocumented
// Google Trends endpoints. Two round trips per call: /api/explore hands out
// a widget token, /api/widgetdata/multiline returns the time series. Both
// responses start with an anti-hijacking prefix that has to be stripped
// before the JSON decodes.
type GoogleTrendsTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewGoogleTrendsTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *GoogleTrendsTool {
	return &GoogleTrendsTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *GoogleTrendsTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "keyword",
			Type:        "string",
			Description: "Search term to chart interest for",
			Required:    true,
		},
		{
			Name:        "geo",
			Type:        "string",
			Description: "Two-letter country code; empty means worldwide",
			Required:    false,
		},
		{
			Name:        "start_date",
			Type:        "string",
			Description: "Start of the time window, e.g. '2024-01-01' (default: today)",
			Required:    false,
		},
		{
			Name:        "end_date",
			Type:        "string",
			Description: "End of the time window (default: today)",
			Required:    false,
		},
	}
}

type trendsPoint struct {
	Time          string `json:"time"`
	FormattedTime string `json:"formatted_time"`
	Value         int    `json:"value"`
}

func (t *GoogleTrendsTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Google Trends tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, []trendsPoint{}).JSON(), nil
	}

	var args struct {
		Keyword   string `json:"keyword"`
		Geo       string `json:"geo"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, []trendsPoint{}).JSON(), nil
	}

	token, trendsReq, err := t.explore(args.Keyword, args.Geo, buildTimeWindow(args.StartDate, args.EndDate))
	if err != nil {
		return entities.Failed(err, []trendsPoint{}).JSON(), nil
	}

	points, err := t.widgetData(token, trendsReq)
	if err != nil {
		return entities.Failed(err, []trendsPoint{}).JSON(), nil
	}

	return entities.OK(points).JSON(), nil
}

// buildTimeWindow formats the window the way the explore endpoint expects:
// "<start> <end>", with each side falling back to "today".
func buildTimeWindow(startDate, endDate string) string {
	if startDate == "" {
		startDate = "today"
	}
	if endDate == "" {
		endDate = "today"
	}
	return startDate + " " + endDate
}

// stripJSONPrefix removes the ")]}'" style garbage Google prepends to its
// JSON bodies. Everything before the first { or [ goes.
func stripJSONPrefix(body []byte) []byte {
	for i, b := range body {
		if b == '{' || b == '[' {
			return body[i:]
		}
	}
	return body
}

func (t *GoogleTrendsTool) baseURL() string {
	if base := t.configuration["trends_base_url"]; base != "" {
		return strings.TrimRight(base, "/")
	}
	return trendsDefaultBaseURL
}

// explore returns the TIMESERIES widget token and the request blob the
// widgetdata call must echo back.
func (t *GoogleTrendsTool) explore(keyword, geo, timeWindow string) (string, json.RawMessage, error) {
	exploreReq := map[string]any{
		"comparisonItem": []map[string]string{
			{"keyword": keyword, "geo": geo, "time": timeWindow},
		},
		"category": 0,
		"property": "",
	}
	reqJSON, _ := json.Marshal(exploreReq)

	query := url.Values{}
	query.Set("hl", "en-US")
	query.Set("tz", "0")
	query.Set("req", string(reqJSON))

	req, err := http.NewRequest(http.MethodGet, t.baseURL()+"/trends/api/explore?"+query.Encode(), nil)
	if err != nil {
		return "", nil, errors.TransportErrorf("failed to create request: %v", err)
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return "", nil, err
	}

	var payload struct {
		Widgets []struct {
			ID      string          `json:"id"`
			Token   string          `json:"token"`
			Request json.RawMessage `json:"request"`
		} `json:"widgets"`
	}
	if err := json.Unmarshal(stripJSONPrefix(body), &payload); err != nil {
		return "", nil, errors.DecodeErrorf("failed to decode explore response: %v", err)
	}

	for _, w := range payload.Widgets {
		if w.ID == "TIMESERIES" {
			return w.Token, w.Request, nil
		}
	}
	return "", nil, errors.UpstreamErrorf("explore response has no TIMESERIES widget")
}

func (t *GoogleTrendsTool) widgetData(token string, trendsReq json.RawMessage) ([]trendsPoint, error) {
	query := url.Values{}
	query.Set("hl", "en-US")
	query.Set("tz", "0")
	query.Set("token", token)
	if trendsReq != nil {
		query.Set("req", string(trendsReq))
	}

	req, err := http.NewRequest(http.MethodGet, t.baseURL()+"/trends/api/widgetdata/multiline?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.TransportErrorf("failed to create request: %v", err)
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Default struct {
			TimelineData []struct {
				Time          string `json:"time"`
				FormattedTime string `json:"formattedTime"`
				Value         []int  `json:"value"`
			} `json:"timelineData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(stripJSONPrefix(body), &payload); err != nil {
		return nil, errors.DecodeErrorf("failed to decode widget data: %v", err)
	}

	// Missing timelineData means no data for the window, not a failure.
	points := make([]trendsPoint, 0, len(payload.Default.TimelineData))
	for _, p := range payload.Default.TimelineData {
		value := 0
		if len(p.Value) > 0 {
			value = p.Value[0]
		}
		points = append(points, trendsPoint{
			Time:          p.Time,
			FormattedTime: p.FormattedTime,
			Value:         value,
		})
	}
	return points, nil
}
