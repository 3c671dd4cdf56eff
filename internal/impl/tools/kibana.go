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

// KibanaTool wraps a Kibana instance: saved-object search and status.
type KibanaTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewKibanaTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *KibanaTool {
	return &KibanaTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *KibanaTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"find_saved_objects", "status"},
			Description: "The Kibana operation to perform (default: find_saved_objects)",
			Required:    false,
		},
		{
			Name:        "type",
			Type:        "string",
			Description: "Saved object type to search for, e.g. dashboard or visualization (default: dashboard)",
			Required:    false,
		},
		{
			Name:        "search",
			Type:        "string",
			Description: "Free-text search applied to the object title; omitted when empty",
			Required:    false,
		},
		{
			Name:        "per_page",
			Type:        "integer",
			Minimum:     floatPtr(1),
			Maximum:     floatPtr(100),
			Description: "Page size between 1 and 100 (default: 20)",
			Required:    false,
		},
	}
}

type kibanaSavedObject struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	UpdatedAt string  `json:"updated_at"`
	Score     float64 `json:"score"`
}

func (t *KibanaTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Kibana tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string `json:"operation"`
		Type      string `json:"type"`
		Search    string `json:"search"`
		PerPage   int    `json:"per_page"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "", "find_saved_objects":
		return t.findSavedObjects(args.Type, args.Search, args.PerPage)
	case "status":
		return t.status()
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

func (t *KibanaTool) newRequest(path string) (*http.Request, error) {
	base := strings.TrimRight(t.configuration["kibana_base_url"], "/")
	req, err := http.NewRequest(http.MethodGet, base+path, nil)
	if err != nil {
		return nil, errors.TransportErrorf("failed to create request: %v", err)
	}
	if key := t.configuration["kibana_api_key"]; key != "" {
		req.Header.Set("Authorization", "ApiKey "+key)
	}
	req.Header.Set("kbn-xsrf", "true")
	return req, nil
}

func (t *KibanaTool) findSavedObjects(objectType, search string, perPage int) (string, error) {
	if objectType == "" {
		objectType = "dashboard"
	}
	if perPage == 0 {
		perPage = 20
	}
	perPage = clamp(perPage, 1, 100)

	query := url.Values{}
	query.Set("type", objectType)
	query.Set("per_page", strconv.Itoa(perPage))
	if search != "" {
		query.Set("search", search)
		query.Set("search_fields", "title")
	}

	req, err := t.newRequest("/api/saved_objects/_find?" + query.Encode())
	if err != nil {
		return entities.Failed(err, []kibanaSavedObject{}).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []kibanaSavedObject{}).JSON(), nil
	}

	var payload struct {
		SavedObjects []struct {
			ID         string  `json:"id"`
			Type       string  `json:"type"`
			UpdatedAt  string  `json:"updated_at"`
			Score      float64 `json:"score"`
			Attributes struct {
				Title string `json:"title"`
			} `json:"attributes"`
		} `json:"saved_objects"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, []kibanaSavedObject{}).JSON(), nil
	}

	objects := make([]kibanaSavedObject, 0, len(payload.SavedObjects))
	for _, o := range payload.SavedObjects {
		objects = append(objects, kibanaSavedObject{
			ID:        o.ID,
			Type:      o.Type,
			Title:     o.Attributes.Title,
			UpdatedAt: o.UpdatedAt,
			Score:     o.Score,
		})
	}
	return entities.OK(objects).JSON(), nil
}

func (t *KibanaTool) status() (string, error) {
	req, err := t.newRequest("/api/status")
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var payload struct {
		Name string `json:"name"`
		UUID string `json:"uuid"`
		Version struct {
			Number string `json:"number"`
		} `json:"version"`
		Status struct {
			Overall struct {
				Level string `json:"level"`
			} `json:"overall"`
		} `json:"status"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	return entities.OK(map[string]string{
		"name":    payload.Name,
		"uuid":    payload.UUID,
		"version": payload.Version.Number,
		"level":   payload.Status.Overall.Level,
	}).JSON(), nil
}
