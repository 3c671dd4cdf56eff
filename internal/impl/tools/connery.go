package tools

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

// ConneryTool wraps a Connery runner: discovering actions, running them and
// composing workflows out of them.
type ConneryTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewConneryTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *ConneryTool {
	return &ConneryTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *ConneryTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"list_actions", "get_action", "run_action", "create_workflow"},
			Description: "The Connery operation to perform (default: list_actions)",
			Required:    false,
		},
		{
			Name:        "action_id",
			Type:        "string",
			Description: "Action identifier, required for get_action and run_action",
			Required:    false,
		},
		{
			Name:        "input",
			Type:        "string",
			Description: "JSON object with the action input, used by run_action",
			Required:    false,
		},
		{
			Name:        "title",
			Type:        "string",
			MaxLength:   100,
			Description: "Workflow title, required for create_workflow (max 100 characters)",
			Required:    false,
		},
		{
			Name:        "actions",
			Type:        "array",
			Items:       []entities.Item{{Type: "string"}},
			Description: "Ordered action identifiers composing the workflow",
			Required:    false,
		},
	}
}

type conneryAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (t *ConneryTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Connery tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string   `json:"operation"`
		ActionID  string   `json:"action_id"`
		Input     string   `json:"input"`
		Title     string   `json:"title"`
		Actions   []string `json:"actions"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "", "list_actions":
		return t.listActions()
	case "get_action":
		return t.getAction(args.ActionID)
	case "run_action":
		return t.runAction(args.ActionID, args.Input)
	case "create_workflow":
		return t.createWorkflow(args.Title, args.Actions)
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

func (t *ConneryTool) newRequest(method, path string, body []byte) (*http.Request, error) {
	base := strings.TrimRight(t.configuration["connery_runner_url"], "/")
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, base+path, reader)
	if err != nil {
		return nil, errors.TransportErrorf("failed to create request: %v", err)
	}
	if key := t.configuration["connery_api_key"]; key != "" {
		req.Header.Set("x-api-key", key)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (t *ConneryTool) listActions() (string, error) {
	req, err := t.newRequest(http.MethodGet, "/v1/actions", nil)
	if err != nil {
		return entities.Failed(err, []conneryAction{}).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []conneryAction{}).JSON(), nil
	}

	var payload struct {
		Data []conneryAction `json:"data"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, []conneryAction{}).JSON(), nil
	}

	actions := payload.Data
	if actions == nil {
		actions = []conneryAction{}
	}
	return entities.OK(actions).JSON(), nil
}

func (t *ConneryTool) getAction(actionID string) (string, error) {
	if actionID == "" {
		err := errors.InvalidInputErrorf("action_id is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	req, err := t.newRequest(http.MethodGet, "/v1/actions/"+url.PathEscape(actionID), nil)
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var payload struct {
		Data conneryAction `json:"data"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}
	return entities.OK(payload.Data).JSON(), nil
}

func (t *ConneryTool) runAction(actionID, input string) (string, error) {
	if actionID == "" {
		err := errors.InvalidInputErrorf("action_id is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	inputMap := map[string]any{}
	if strings.TrimSpace(input) != "" {
		if err := json.Unmarshal([]byte(input), &inputMap); err != nil {
			invalidErr := errors.InvalidInputErrorf("input must be a JSON object: %v", err)
			return entities.Failed(invalidErr, nil).JSON(), nil
		}
	}

	echo := map[string]any{"action_id": actionID, "input": inputMap}

	reqBody, _ := json.Marshal(map[string]any{"input": inputMap})
	req, err := t.newRequest(http.MethodPost, "/v1/actions/"+url.PathEscape(actionID)+"/run", reqBody)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	var payload struct {
		Data struct {
			Output map[string]any `json:"output"`
		} `json:"data"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	output := payload.Data.Output
	if output == nil {
		output = map[string]any{}
	}
	return entities.OK(map[string]any{
		"action_id": actionID,
		"output":    output,
	}).JSON(), nil
}

func (t *ConneryTool) createWorkflow(title string, actions []string) (string, error) {
	if title == "" {
		err := errors.InvalidInputErrorf("title is required")
		return entities.Failed(err, nil).JSON(), nil
	}
	if len(actions) == 0 {
		err := errors.InvalidInputErrorf("actions must not be empty")
		return entities.Failed(err, nil).JSON(), nil
	}

	echo := map[string]any{"title": title, "actions": actions}

	reqBody, _ := json.Marshal(map[string]any{"title": title, "actions": actions})
	req, err := t.newRequest(http.MethodPost, "/v1/workflows", reqBody)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	return entities.OK(map[string]any{
		"workflow_id": payload.Data.ID,
		"title":       title,
		"actions":     actions,
	}).JSON(), nil
}
