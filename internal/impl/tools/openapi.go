package tools

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"github.com/go-openapi/spec"
	"go.uber.org/zap"
)

// OpenAPITool fetches a Swagger/OpenAPI 2.0 document from a configured URL
// and flattens it into a list of callable endpoints. Pairs well with an
// agent that follows up with raw HTTP calls.
type OpenAPITool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewOpenAPITool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *OpenAPITool {
	return &OpenAPITool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *OpenAPITool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "url",
			Type:        "string",
			Description: "Specification URL; defaults to the configured openapi_url",
			Required:    false,
		},
	}
}

type openAPIEndpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Summary     string `json:"summary"`
	OperationID string `json:"operation_id"`
}

func (t *OpenAPITool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing OpenAPI tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, []openAPIEndpoint{}).JSON(), nil
	}

	var args struct {
		URL string `json:"url"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, []openAPIEndpoint{}).JSON(), nil
	}

	specURL := args.URL
	if specURL == "" {
		specURL = t.configuration["openapi_url"]
	}
	if specURL == "" {
		err := errors.InvalidInputErrorf("no specification URL given and openapi_url is not configured")
		return entities.Failed(err, []openAPIEndpoint{}).JSON(), nil
	}

	req, err := http.NewRequest(http.MethodGet, specURL, nil)
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), []openAPIEndpoint{}).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []openAPIEndpoint{}).JSON(), nil
	}

	var swagger spec.Swagger
	if err := json.Unmarshal(body, &swagger); err != nil {
		decodeErr := errors.DecodeErrorf("failed to parse specification: %v", err)
		return entities.Failed(decodeErr, []openAPIEndpoint{}).JSON(), nil
	}

	endpoints := []openAPIEndpoint{}
	if swagger.Paths != nil {
		for path, item := range swagger.Paths.Paths {
			for method, op := range map[string]*spec.Operation{
				"GET":    item.Get,
				"POST":   item.Post,
				"PUT":    item.Put,
				"PATCH":  item.Patch,
				"DELETE": item.Delete,
			} {
				if op == nil {
					continue
				}
				endpoints = append(endpoints, openAPIEndpoint{
					Method:      method,
					Path:        path,
					Summary:     op.Summary,
					OperationID: op.ID,
				})
			}
		}
	}
	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Path != endpoints[j].Path {
			return endpoints[i].Path < endpoints[j].Path
		}
		return endpoints[i].Method < endpoints[j].Method
	})

	return entities.OK(endpoints).JSON(), nil
}
