package tools

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const tavilyDefaultBaseURL = "https://api.tavily.com"

// WebSearchTool searches the web through the Tavily API.
type WebSearchTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewWebSearchTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *WebSearchTool {
	return &WebSearchTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *WebSearchTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "query",
			Type:        "string",
			MaxLength:   400,
			Description: "Search query",
			Required:    true,
		},
		{
			Name:        "num_results",
			Type:        "integer",
			Description: "Number of results between 1 and 30 (default: 10)",
			Required:    false,
		},
	}
}

type webSearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

func (t *WebSearchTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing web search", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, []webSearchResult{}).JSON(), nil
	}

	var args struct {
		Query      string `json:"query"`
		NumResults int    `json:"num_results"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, []webSearchResult{}).JSON(), nil
	}

	if args.NumResults == 0 {
		args.NumResults = 10
	}
	args.NumResults = clamp(args.NumResults, 1, 30)

	base := t.configuration["tavily_base_url"]
	if base == "" {
		base = tavilyDefaultBaseURL
	}

	payload, _ := json.Marshal(map[string]any{
		"api_key":        t.configuration["tavily_api_key"],
		"query":          args.Query,
		"include_answer": true,
	})
	req, err := http.NewRequest(http.MethodPost, base+"/search", bytes.NewReader(payload))
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), []webSearchResult{}).JSON(), nil
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []webSearchResult{}).JSON(), nil
	}

	var upstream struct {
		Answer  string            `json:"answer"`
		Results []webSearchResult `json:"results"`
	}
	if err := decodeJSON(body, &upstream); err != nil {
		return entities.Failed(err, []webSearchResult{}).JSON(), nil
	}

	if len(upstream.Results) > args.NumResults {
		upstream.Results = upstream.Results[:args.NumResults]
	}
	results := upstream.Results
	if results == nil {
		results = []webSearchResult{}
	}

	t.logger.Info("Web search completed", zap.String("query", args.Query), zap.Int("results", len(results)))
	return entities.OK(map[string]any{
		"answer":  upstream.Answer,
		"results": results,
	}).JSON(), nil
}

var _ entities.Tool = (*WebSearchTool)(nil)
