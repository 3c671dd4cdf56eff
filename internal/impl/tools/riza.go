package tools

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const rizaDefaultBaseURL = "https://api.riza.io"

// RizaTool wraps the Riza ML inference service: kicking off training jobs
// and promoting trained models to a deployment.
type RizaTool struct {
	toolBase
	client interfaces.HTTPClient
	now    func() time.Time
}

func NewRizaTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *RizaTool {
	return &RizaTool{
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

func (t *RizaTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"train_model", "deploy_model"},
			Description: "The Riza operation to perform",
			Required:    true,
		},
		{
			Name:        "model",
			Type:        "string",
			Description: "Model name, required for train_model",
			Required:    false,
		},
		{
			Name:        "dataset",
			Type:        "string",
			Description: "Dataset identifier the training job reads from",
			Required:    false,
		},
		{
			Name:        "model_id",
			Type:        "string",
			Description: "Trained model identifier, required for deploy_model",
			Required:    false,
		},
	}
}

func (t *RizaTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Riza tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string `json:"operation"`
		Model     string `json:"model"`
		Dataset   string `json:"dataset"`
		ModelID   string `json:"model_id"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "train_model":
		return t.trainModel(args.Model, args.Dataset)
	case "deploy_model":
		return t.deployModel(args.ModelID)
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

func (t *RizaTool) newRequest(path string, body []byte) (*http.Request, error) {
	base := t.configuration["riza_base_url"]
	if base == "" {
		base = rizaDefaultBaseURL
	}
	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(base, "/")+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.TransportErrorf("failed to create request: %v", err)
	}
	setBearer(req, t.configuration["riza_api_key"])
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (t *RizaTool) trainModel(model, dataset string) (string, error) {
	if model == "" {
		err := errors.InvalidInputErrorf("model is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	echo := map[string]string{"model": model, "dataset": dataset}

	reqBody, _ := json.Marshal(map[string]string{"model": model, "dataset": dataset})
	req, err := t.newRequest("/v1/models/train", reqBody)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	started := t.now()
	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	var payload struct {
		JobID     string `json:"job_id"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	if payload.Status == "" {
		payload.Status = "queued"
	}
	if payload.CreatedAt == "" {
		payload.CreatedAt = t.now().UTC().Format(time.RFC3339)
	}

	return entities.OK(map[string]any{
		"job_id":      payload.JobID,
		"model":       model,
		"dataset":     dataset,
		"status":      payload.Status,
		"created_at":  payload.CreatedAt,
		"duration_ms": t.now().Sub(started).Milliseconds(),
	}).JSON(), nil
}

func (t *RizaTool) deployModel(modelID string) (string, error) {
	if modelID == "" {
		err := errors.InvalidInputErrorf("model_id is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	echo := map[string]string{"model_id": modelID}

	req, err := t.newRequest("/v1/models/"+url.PathEscape(modelID)+"/deploy", []byte("{}"))
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	started := t.now()
	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	var payload struct {
		DeploymentID string `json:"deployment_id"`
		Status       string `json:"status"`
		CreatedAt    string `json:"created_at"`
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

	return entities.OK(map[string]any{
		"deployment_id": payload.DeploymentID,
		"model_id":      modelID,
		"status":        payload.Status,
		"created_at":    payload.CreatedAt,
		"duration_ms":   t.now().Sub(started).Milliseconds(),
	}).JSON(), nil
}
