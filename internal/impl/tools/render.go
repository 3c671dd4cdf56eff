package tools

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const renderDefaultBaseURL = "https://api.render.com"

// RenderTool wraps the Render hosting API: service listing, lookup and
// deploy triggering.
type RenderTool struct {
	toolBase
	client interfaces.HTTPClient
	now    func() time.Time
}

func NewRenderTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *RenderTool {
	return &RenderTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
		now:    time.Now,
	}
}

func (t *RenderTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"list_services", "get_service", "deploy_service"},
			Description: "The Render operation to perform (default: list_services)",
			Required:    false,
		},
		{
			Name:        "service_id",
			Type:        "string",
			Description: "Service identifier, required for get_service and deploy_service",
			Required:    false,
		},
	}
}

type renderService struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Repo       string `json:"repo"`
	Branch     string `json:"branch"`
	AutoDeploy string `json:"auto_deploy"`
	Status     string `json:"status"`
}

type renderServicePayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Repo       string `json:"repo"`
	Branch     string `json:"branch"`
	AutoDeploy string `json:"autoDeploy"`
	Suspended  string `json:"suspended"`
}

func (t *RenderTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Render tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string `json:"operation"`
		ServiceID string `json:"service_id"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "", "list_services":
		return t.listServices()
	case "get_service":
		return t.getService(args.ServiceID)
	case "deploy_service":
		return t.deployService(args.ServiceID)
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

func (t *RenderTool) newRequest(method, path string) (*http.Request, error) {
	base := t.configuration["render_base_url"]
	if base == "" {
		base = renderDefaultBaseURL
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, errors.TransportErrorf("failed to create request: %v", err)
	}
	setBearer(req, t.configuration["render_api_key"])
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (t *RenderTool) listServices() (string, error) {
	req, err := t.newRequest(http.MethodGet, "/v1/services")
	if err != nil {
		return entities.Failed(err, []renderService{}).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []renderService{}).JSON(), nil
	}

	// Render wraps each service in a cursor envelope.
	var payload []struct {
		Service renderServicePayload `json:"service"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, []renderService{}).JSON(), nil
	}

	services := make([]renderService, 0, len(payload))
	for _, p := range payload {
		services = append(services, normalizeRenderService(p.Service))
	}
	return entities.OK(services).JSON(), nil
}

func (t *RenderTool) getService(serviceID string) (string, error) {
	if serviceID == "" {
		err := errors.InvalidInputErrorf("service_id is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	req, err := t.newRequest(http.MethodGet, "/v1/services/"+url.PathEscape(serviceID))
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var payload renderServicePayload
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}
	return entities.OK(normalizeRenderService(payload)).JSON(), nil
}

func (t *RenderTool) deployService(serviceID string) (string, error) {
	if serviceID == "" {
		err := errors.InvalidInputErrorf("service_id is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	echo := map[string]string{"service_id": serviceID}

	req, err := t.newRequest(http.MethodPost, "/v1/services/"+url.PathEscape(serviceID)+"/deploys")
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	var payload struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		CreatedAt string `json:"createdAt"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	if payload.Status == "" {
		payload.Status = "building"
	}
	if payload.CreatedAt == "" {
		payload.CreatedAt = t.now().UTC().Format(time.RFC3339)
	}

	return entities.OK(map[string]string{
		"service_id": serviceID,
		"deploy_id":  payload.ID,
		"status":     payload.Status,
		"created_at": payload.CreatedAt,
	}).JSON(), nil
}

func normalizeRenderService(p renderServicePayload) renderService {
	status := "available"
	if p.Suspended == "suspended" {
		status = "suspended"
	}
	return renderService{
		ID:         p.ID,
		Name:       p.Name,
		Type:       p.Type,
		Repo:       p.Repo,
		Branch:     p.Branch,
		AutoDeploy: p.AutoDeploy,
		Status:     status,
	}
}
