package tools

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreSwagger = `{
  "swagger": "2.0",
  "info": {"title": "Petstore", "version": "1.0"},
  "paths": {
    "/pets": {
      "get": {"summary": "List pets", "operationId": "listPets"},
      "post": {"summary": "Create a pet", "operationId": "createPet"}
    },
    "/pets/{id}": {
      "delete": {"summary": "Remove a pet", "operationId": "deletePet"}
    }
  }
}`

func TestOpenAPIToolFlattensEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(petstoreSwagger))
	}))
	defer server.Close()

	tool := NewOpenAPITool("openapi", "describe an API", map[string]string{
		"openapi_url": server.URL + "/swagger.json",
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)

	var endpoints []openAPIEndpoint
	decodeData(t, env, &endpoints)
	require.Len(t, endpoints, 3)
	// Sorted by path then method.
	assert.Equal(t, openAPIEndpoint{Method: "GET", Path: "/pets", Summary: "List pets", OperationID: "listPets"}, endpoints[0])
	assert.Equal(t, openAPIEndpoint{Method: "POST", Path: "/pets", Summary: "Create a pet", OperationID: "createPet"}, endpoints[1])
	assert.Equal(t, openAPIEndpoint{Method: "DELETE", Path: "/pets/{id}", Summary: "Remove a pet", OperationID: "deletePet"}, endpoints[2])
}

func TestOpenAPIToolArgumentURLWins(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"swagger": "2.0", "paths": {}}`))
	}))
	defer server.Close()

	tool := NewOpenAPITool("openapi", "describe an API", map[string]string{
		"openapi_url": server.URL + "/configured.json",
	}, server.Client(), newTestLogger())

	_, err := tool.Execute(`{"url": "` + server.URL + `/explicit.json"}`)
	require.NoError(t, err)
	assert.Equal(t, "/explicit.json", gotPath)
}

func TestOpenAPIToolRequiresSomeURL(t *testing.T) {
	tool := NewOpenAPITool("openapi", "describe an API", map[string]string{}, failingClient{}, newTestLogger())

	result, err := tool.Execute(`{}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_input", env.ErrorKind)
	assert.Contains(t, env.Error, "openapi_url")
}

func TestOpenAPIToolBadSpecIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not a spec`))
	}))
	defer server.Close()

	tool := NewOpenAPITool("openapi", "describe an API", map[string]string{
		"openapi_url": server.URL,
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "decode", env.ErrorKind)
}
