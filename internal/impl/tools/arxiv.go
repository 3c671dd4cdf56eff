package tools

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const arxivDefaultBaseURL = "http://export.arxiv.org/api/query"

// ArxivTool searches the arXiv preprint archive. The upstream speaks Atom
// XML, not JSON, so this is the one adapter that goes through encoding/xml.
type ArxivTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewArxivTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *ArxivTool {
	return &ArxivTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *ArxivTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "query",
			Type:        "string",
			Description: "arXiv search query, e.g. 'all:quantum computing' or 'cat:cs.LG'",
			Required:    true,
		},
		{
			Name:        "start",
			Type:        "integer",
			Minimum:     floatPtr(0),
			Description: "Result offset for paging (default: 0)",
			Required:    false,
		},
		{
			Name:        "max_results",
			Type:        "integer",
			Description: "Number of results between 1 and 100 (default: 10)",
			Required:    false,
		},
	}
}

type arxivPaper struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Published  string   `json:"published"`
	Authors    []string `json:"authors"`
	Categories []string `json:"categories"`
	Link       string   `json:"link"`
}

type arxivFeed struct {
	Entries []struct {
		ID        string `xml:"id"`
		Title     string `xml:"title"`
		Summary   string `xml:"summary"`
		Published string `xml:"published"`
		Authors   []struct {
			Name string `xml:"name"`
		} `xml:"author"`
		Categories []struct {
			Term string `xml:"term,attr"`
		} `xml:"category"`
		Links []struct {
			Href  string `xml:"href,attr"`
			Title string `xml:"title,attr"`
		} `xml:"link"`
	} `xml:"entry"`
}

func (t *ArxivTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing arXiv tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, []arxivPaper{}).JSON(), nil
	}

	var args struct {
		Query      string `json:"query"`
		Start      int    `json:"start"`
		MaxResults int    `json:"max_results"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, []arxivPaper{}).JSON(), nil
	}

	if args.MaxResults == 0 {
		args.MaxResults = 10
	}
	args.MaxResults = clamp(args.MaxResults, 1, 100)
	if args.Start < 0 {
		args.Start = 0
	}

	base := t.configuration["arxiv_base_url"]
	if base == "" {
		base = arxivDefaultBaseURL
	}

	query := url.Values{}
	query.Set("search_query", args.Query)
	query.Set("start", strconv.Itoa(args.Start))
	query.Set("max_results", strconv.Itoa(args.MaxResults))

	req, err := http.NewRequest(http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), []arxivPaper{}).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []arxivPaper{}).JSON(), nil
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		decodeErr := errors.DecodeErrorf("failed to parse Atom feed: %v", err)
		return entities.Failed(decodeErr, []arxivPaper{}).JSON(), nil
	}

	papers := make([]arxivPaper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		paper := arxivPaper{
			ID:         e.ID,
			Title:      collapseWhitespace(e.Title),
			Summary:    collapseWhitespace(e.Summary),
			Published:  e.Published,
			Authors:    []string{},
			Categories: []string{},
		}
		for _, a := range e.Authors {
			paper.Authors = append(paper.Authors, a.Name)
		}
		for _, c := range e.Categories {
			paper.Categories = append(paper.Categories, c.Term)
		}
		for _, l := range e.Links {
			if l.Title == "pdf" {
				paper.Link = l.Href
				break
			}
		}
		papers = append(papers, paper)
	}

	return entities.OK(papers).JSON(), nil
}

// collapseWhitespace flattens the newlines and indentation arXiv embeds in
// titles and abstracts into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
