package tools

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

const (
	azureDefaultBaseURL = "https://management.azure.com"
	azureAPIVersion     = "2023-07-01"
)

// AzureTool wraps the Azure Resource Manager compute API: listing, fetching
// and starting virtual machines in the configured subscription.
type AzureTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewAzureTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *AzureTool {
	return &AzureTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *AzureTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"list_vms", "get_vm", "start_vm"},
			Description: "The Azure operation to perform (default: list_vms)",
			Required:    false,
		},
		{
			Name:        "resource_group",
			Type:        "string",
			Description: "Resource group name, required for get_vm and start_vm",
			Required:    false,
		},
		{
			Name:        "vm_name",
			Type:        "string",
			Description: "Virtual machine name, required for get_vm and start_vm",
			Required:    false,
		},
	}
}

type azureVM struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Size     string `json:"size"`
	OS       string `json:"os"`
	State    string `json:"state"`
}

type azureVMPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Properties struct {
		ProvisioningState string `json:"provisioningState"`
		HardwareProfile   struct {
			VMSize string `json:"vmSize"`
		} `json:"hardwareProfile"`
		StorageProfile struct {
			OSDisk struct {
				OSType string `json:"osType"`
			} `json:"osDisk"`
		} `json:"storageProfile"`
	} `json:"properties"`
}

func (t *AzureTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Azure tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation     string `json:"operation"`
		ResourceGroup string `json:"resource_group"`
		VMName        string `json:"vm_name"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "", "list_vms":
		return t.listVMs()
	case "get_vm":
		return t.getVM(args.ResourceGroup, args.VMName)
	case "start_vm":
		return t.startVM(args.ResourceGroup, args.VMName)
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

func (t *AzureTool) baseURL() string {
	if base := t.configuration["azure_base_url"]; base != "" {
		return strings.TrimRight(base, "/")
	}
	return azureDefaultBaseURL
}

func (t *AzureTool) listVMs() (string, error) {
	endpoint := fmt.Sprintf("%s/subscriptions/%s/providers/Microsoft.Compute/virtualMachines?api-version=%s",
		t.baseURL(), url.PathEscape(t.configuration["azure_subscription_id"]), azureAPIVersion)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), nil).JSON(), nil
	}
	setBearer(req, t.configuration["azure_token"])

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []azureVM{}).JSON(), nil
	}

	var payload struct {
		Value []azureVMPayload `json:"value"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, []azureVM{}).JSON(), nil
	}

	vms := make([]azureVM, 0, len(payload.Value))
	for _, v := range payload.Value {
		vms = append(vms, normalizeAzureVM(v))
	}
	return entities.OK(vms).JSON(), nil
}

func (t *AzureTool) getVM(resourceGroup, vmName string) (string, error) {
	if resourceGroup == "" || vmName == "" {
		err := errors.InvalidInputErrorf("resource_group and vm_name are required")
		return entities.Failed(err, nil).JSON(), nil
	}

	endpoint := fmt.Sprintf("%s/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Compute/virtualMachines/%s?api-version=%s",
		t.baseURL(), url.PathEscape(t.configuration["azure_subscription_id"]),
		url.PathEscape(resourceGroup), url.PathEscape(vmName), azureAPIVersion)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), nil).JSON(), nil
	}
	setBearer(req, t.configuration["azure_token"])

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var payload azureVMPayload
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}
	return entities.OK(normalizeAzureVM(payload)).JSON(), nil
}

func (t *AzureTool) startVM(resourceGroup, vmName string) (string, error) {
	if resourceGroup == "" || vmName == "" {
		err := errors.InvalidInputErrorf("resource_group and vm_name are required")
		return entities.Failed(err, nil).JSON(), nil
	}

	endpoint := fmt.Sprintf("%s/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Compute/virtualMachines/%s/start?api-version=%s",
		t.baseURL(), url.PathEscape(t.configuration["azure_subscription_id"]),
		url.PathEscape(resourceGroup), url.PathEscape(vmName), azureAPIVersion)

	echo := map[string]string{"resource_group": resourceGroup, "vm_name": vmName}

	req, err := http.NewRequest(http.MethodPost, endpoint, nil)
	if err != nil {
		return entities.Failed(errors.TransportErrorf("failed to create request: %v", err), echo).JSON(), nil
	}
	setBearer(req, t.configuration["azure_token"])

	if _, err := doRequest(t.client, req, t.logger); err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	return entities.OK(map[string]string{
		"vm_name": vmName,
		"status":  "starting",
	}).JSON(), nil
}

func normalizeAzureVM(v azureVMPayload) azureVM {
	return azureVM{
		ID:       v.ID,
		Name:     v.Name,
		Location: v.Location,
		Size:     v.Properties.HardwareProfile.VMSize,
		OS:       v.Properties.StorageProfile.OSDisk.OSType,
		State:    v.Properties.ProvisioningState,
	}
}
