package tools

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConneryToolListActions(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/actions", r.URL.Path)
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{"data": [
			{"id": "CA1", "title": "Send email", "description": "Sends an email", "type": "create"},
			{"id": "CA2", "title": "Refresh cache"}
		]}`))
	}))
	defer server.Close()

	tool := NewConneryTool("connery", "run Connery actions", map[string]string{
		"connery_runner_url": server.URL,
		"connery_api_key":    "runner-key",
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)

	var actions []conneryAction
	decodeData(t, env, &actions)
	require.Len(t, actions, 2)
	assert.Equal(t, "Send email", actions[0].Title)
	assert.Equal(t, "runner-key", gotKey)
}

func TestConneryToolListActionsNullData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null}`))
	}))
	defer server.Close()

	tool := NewConneryTool("connery", "run Connery actions", map[string]string{
		"connery_runner_url": server.URL,
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{"operation": "list_actions"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)), "null data normalizes to an empty list")
}

func TestConneryToolRunAction(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/actions/CA1/run", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"data": {"output": {"messageId": "msg-1"}}}`))
	}))
	defer server.Close()

	tool := NewConneryTool("connery", "run Connery actions", map[string]string{
		"connery_runner_url": server.URL,
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{"operation": "run_action", "action_id": "CA1", "input": "{\"to\": \"a@b.c\"}"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)

	var run map[string]any
	decodeData(t, env, &run)
	assert.Equal(t, "CA1", run["action_id"])
	output := run["output"].(map[string]any)
	assert.Equal(t, "msg-1", output["messageId"])

	var sent map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, map[string]any{"to": "a@b.c"}, sent["input"])
}

func TestConneryToolRunActionRejectsBadInput(t *testing.T) {
	tool := NewConneryTool("connery", "run Connery actions", map[string]string{}, failingClient{}, newTestLogger())

	result, err := tool.Execute(`{"operation": "run_action", "action_id": "CA1", "input": "not json"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_input", env.ErrorKind)
}

func TestConneryToolCreateWorkflow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/workflows", r.URL.Path)
		w.Write([]byte(`{"data": {"id": "wf-1"}}`))
	}))
	defer server.Close()

	tool := NewConneryTool("connery", "run Connery actions", map[string]string{
		"connery_runner_url": server.URL,
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{"operation": "create_workflow", "title": "Daily digest", "actions": ["CA1", "CA2"]}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)

	var wf map[string]any
	decodeData(t, env, &wf)
	assert.Equal(t, "wf-1", wf["workflow_id"])
	assert.Equal(t, "Daily digest", wf["title"])
}

func TestConneryToolWorkflowTitleTooLong(t *testing.T) {
	tool := NewConneryTool("connery", "run Connery actions", map[string]string{}, failingClient{}, newTestLogger())

	args, _ := json.Marshal(map[string]any{
		"operation": "create_workflow",
		"title":     strings.Repeat("x", 101),
		"actions":   []string{"CA1"},
	})
	result, err := tool.Execute(string(args))
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_input", env.ErrorKind)
	assert.Contains(t, env.Error, "title")
}

func TestConneryToolWorkflowNeedsActions(t *testing.T) {
	tool := NewConneryTool("connery", "run Connery actions", map[string]string{}, failingClient{}, newTestLogger())

	result, err := tool.Execute(`{"operation": "create_workflow", "title": "Empty"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_input", env.ErrorKind)
	assert.Contains(t, env.Error, "actions")
}
