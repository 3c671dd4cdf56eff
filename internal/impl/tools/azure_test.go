package tools

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureToolListVMs(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.URL.Query().Get("api-version")
		w.Write([]byte(`{"value": [
			{"id": "/subscriptions/sub-1/vm-a", "name": "vm-a", "location": "westeurope",
			 "properties": {"provisioningState": "Succeeded",
			                "hardwareProfile": {"vmSize": "Standard_B2s"},
			                "storageProfile": {"osDisk": {"osType": "Linux"}}}},
			{"id": "/subscriptions/sub-1/vm-b", "name": "vm-b", "location": "eastus",
			 "properties": {}}
		]}`))
	}))
	defer server.Close()

	tool := NewAzureTool("azure", "manage Azure VMs", map[string]string{
		"azure_base_url":        server.URL,
		"azure_subscription_id": "sub-1",
		"azure_token":           "az-token",
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)

	var vms []azureVM
	decodeData(t, env, &vms)
	require.Len(t, vms, 2)
	assert.Equal(t, azureVM{
		ID:       "/subscriptions/sub-1/vm-a",
		Name:     "vm-a",
		Location: "westeurope",
		Size:     "Standard_B2s",
		OS:       "Linux",
		State:    "Succeeded",
	}, vms[0])
	assert.Equal(t, "", vms[1].Size, "missing profile fields normalize to empty strings")
	assert.Equal(t, "", vms[1].OS)

	assert.Equal(t, "/subscriptions/sub-1/providers/Microsoft.Compute/virtualMachines", gotPath)
	assert.Equal(t, "Bearer az-token", gotAuth)
	assert.Equal(t, "2023-07-01", gotVersion)
}

func TestAzureToolStartVM(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	tool := NewAzureTool("azure", "manage Azure VMs", map[string]string{
		"azure_base_url":        server.URL,
		"azure_subscription_id": "sub-1",
	}, server.Client(), newTestLogger())

	result, err := tool.Execute(`{"operation": "start_vm", "resource_group": "prod", "vm_name": "vm-a"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.True(t, env.Success)

	var status map[string]string
	decodeData(t, env, &status)
	assert.Equal(t, "vm-a", status["vm_name"])
	assert.Equal(t, "starting", status["status"])
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/subscriptions/sub-1/resourceGroups/prod/providers/Microsoft.Compute/virtualMachines/vm-a/start", gotPath)
}

func TestAzureToolGetVMRequiresNames(t *testing.T) {
	tool := NewAzureTool("azure", "manage Azure VMs", map[string]string{}, failingClient{}, newTestLogger())

	result, err := tool.Execute(`{"operation": "get_vm", "vm_name": "vm-a"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_input", env.ErrorKind)
	assert.Contains(t, env.Error, "resource_group")
}

func TestAzureToolRejectsUnknownOperation(t *testing.T) {
	tool := NewAzureTool("azure", "manage Azure VMs", map[string]string{}, failingClient{}, newTestLogger())

	result, err := tool.Execute(`{"operation": "delete_vm"}`)
	require.NoError(t, err)

	env := parseEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_input", env.ErrorKind)
}
