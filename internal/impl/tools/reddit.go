package tools

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const redditDefaultBaseURL = "https://www.reddit.com"

// RedditTool searches Reddit through the public JSON listing endpoint.
type RedditTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewRedditTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *RedditTool {
	return &RedditTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *RedditTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "query",
			Type:        "string",
			Description: "Search query; use '*' to browse without a query",
			Required:    true,
		},
		{
			Name:        "limit",
			Type:        "integer",
			Description: "Number of results between 1 and 100 (default: 25)",
			Required:    false,
		},
		{
			Name:        "sort",
			Type:        "string",
			Enum:        []string{"relevance", "hot", "top", "new", "comments"},
			Description: "Sort order; omitted when empty",
			Required:    false,
		},
		{
			Name:        "time",
			Type:        "string",
			Enum:        []string{"hour", "day", "week", "month", "year", "all"},
			Description: "Time window for top/relevance sorts; omitted when empty",
			Required:    false,
		},
	}
}

type redditPost struct {
	Title      string  `json:"title"`
	Subreddit  string  `json:"subreddit"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	Comments   int     `json:"comments"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
}

func (t *RedditTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Reddit tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, []redditPost{}).JSON(), nil
	}

	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
		Sort  string `json:"sort"`
		Time  string `json:"time"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, []redditPost{}).JSON(), nil
	}

	if args.Limit == 0 {
		args.Limit = 25
	}
	args.Limit = clamp(args.Limit, 1, 100)

	base := t.configuration["reddit_base_url"]
	if base == "" {
		base = redditDefaultBaseURL
	}

	query := url.Values{}
	// A bare "*" means "everything": Reddit treats it as a literal search
	// term, so drop the parameter instead of sending it.
	if args.Query != "*" {
		query.Set("q", args.Query)
	}
	query.Set("limit", strconv.Itoa(args.Limit))
	if args.Sort != "" {
		query.Set("sort", args.Sort)
	}
	if args.Time != "" {
		query.Set("t", args.Time)
	}

	endpoint := strings.TrimRight(base, "/") + "/search.json?" + query.Encode()
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), []redditPost{}).JSON(), nil
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []redditPost{}).JSON(), nil
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					Title       string  `json:"title"`
					Subreddit   string  `json:"subreddit"`
					Author      string  `json:"author"`
					Score       int     `json:"score"`
					NumComments int     `json:"num_comments"`
					Permalink   string  `json:"permalink"`
					CreatedUTC  float64 `json:"created_utc"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, []redditPost{}).JSON(), nil
	}

	posts := make([]redditPost, 0, len(payload.Data.Children))
	for _, c := range payload.Data.Children {
		d := c.Data
		postURL := ""
		if d.Permalink != "" {
			postURL = redditDefaultBaseURL + d.Permalink
		}
		posts = append(posts, redditPost{
			Title:      d.Title,
			Subreddit:  d.Subreddit,
			Author:     d.Author,
			Score:      d.Score,
			Comments:   d.NumComments,
			URL:        postURL,
			CreatedUTC: d.CreatedUTC,
		})
	}

	return entities.OK(posts).JSON(), nil
}
