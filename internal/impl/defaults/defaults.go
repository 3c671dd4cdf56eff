package defaults

import (
	"github.com/toolbelt/toolbelt/internal/domain/entities"
)

// DefaultTools returns the seed catalog written on first run: one record per
// registered adapter, with credentials left as #{ENV_VAR}# references so the
// catalog file never contains secrets.
func DefaultTools() []*entities.ToolData {
	return []*entities.ToolData{
		{
			ID:          "6E1D79FB-4A31-4A52-9DB8-1E3F6F0A21C4",
			ToolType:    "Azure",
			Name:        "Azure",
			Description: "Manage Azure virtual machines: list, inspect, and start VMs",
			Configuration: map[string]string{
				"azure_token":           "#{AZURE_TOKEN}#",
				"azure_subscription_id": "#{AZURE_SUBSCRIPTION_ID}#",
			},
		},
		{
			ID:          "5B3A0F62-43B9-4E5C-9D3C-8A0C66E34981",
			ToolType:    "Kibana",
			Name:        "Kibana",
			Description: "Search Kibana saved objects and check instance status",
			Configuration: map[string]string{
				"kibana_base_url": "#{KIBANA_BASE_URL}#",
				"kibana_api_key":  "#{KIBANA_API_KEY}#",
			},
		},
		{
			ID:            "0D5C4F76-91D0-4B6C-8B7B-2F1F24C50A38",
			ToolType:      "Arxiv",
			Name:          "Arxiv",
			Description:   "Search arXiv papers with authors, categories, and PDF links",
			Configuration: map[string]string{},
		},
		{
			ID:            "A4FE16A6-7E4B-4E54-8F68-6C8E5B3D9C11",
			ToolType:      "Reddit",
			Name:          "Reddit",
			Description:   "Search Reddit posts through the public JSON API",
			Configuration: map[string]string{},
		},
		{
			ID:          "2C9F77B1-9A9C-4621-9F1E-FD37A20B8F59",
			ToolType:    "Render",
			Name:        "Render",
			Description: "List, inspect, and deploy Render services",
			Configuration: map[string]string{
				"render_api_key": "#{RENDER_API_KEY}#",
			},
		},
		{
			ID:          "8F0E2D4B-6E21-4A83-BF5A-72D94C1A6E02",
			ToolType:    "Connery",
			Name:        "Connery",
			Description: "Discover and run Connery actions, compose workflows",
			Configuration: map[string]string{
				"connery_runner_url": "#{CONNERY_RUNNER_URL}#",
				"connery_api_key":    "#{CONNERY_API_KEY}#",
			},
		},
		{
			ID:          "E7A85A20-14D3-47C6-8F0B-3C55D4F29A77",
			ToolType:    "Mailchimp",
			Name:        "Mailchimp",
			Description: "List and create Mailchimp email campaigns",
			Configuration: map[string]string{
				"mailchimp_api_key":   "#{MAILCHIMP_API_KEY}#",
				"mailchimp_from_name": "#{MAILCHIMP_FROM_NAME}#",
				"mailchimp_reply_to":  "#{MAILCHIMP_REPLY_TO}#",
			},
		},
		{
			ID:          "91B6C0DE-2A87-4B3F-A1E4-5D6F80C2B943",
			ToolType:    "Riza",
			Name:        "Riza",
			Description: "Start Riza training jobs and deploy trained models",
			Configuration: map[string]string{
				"riza_api_key": "#{RIZA_API_KEY}#",
			},
		},
		{
			ID:            "3A7D9E55-0C16-4F2B-B8A9-E1D2C4F06B88",
			ToolType:      "GoogleTrends",
			Name:          "GoogleTrends",
			Description:   "Chart search interest over time via Google Trends",
			Configuration: map[string]string{},
		},
		{
			ID:            "C2E41B09-8D73-4A60-95C1-F7B3A8D5E426",
			ToolType:      "GoogleFinance",
			Name:          "GoogleFinance",
			Description:   "Simulated stock quotes and earnings (demo data)",
			Configuration: map[string]string{},
		},
		{
			ID:            "7D50F3C8-B1A4-4E97-8C26-09E6D2B47A15",
			ToolType:      "GoogleJobs",
			Name:          "GoogleJobs",
			Description:   "Simulated job market data (demo data)",
			Configuration: map[string]string{},
		},
		{
			ID:          "48C6E9A2-D05F-4B18-A7E3-16F82C9D0B64",
			ToolType:    "WebSearch",
			Name:        "WebSearch",
			Description: "Search the web using the Tavily API",
			Configuration: map[string]string{
				"tavily_api_key": "#{TAVILY_API_KEY}#",
			},
		},
		{
			ID:          "B95D21F7-3E68-4C0A-BD49-A2C7F15E8D30",
			ToolType:    "OpenAPI",
			Name:        "OpenAPI",
			Description: "List the endpoints an OpenAPI specification offers",
			Configuration: map[string]string{
				"openapi_url": "#{OPENAPI_URL}#",
			},
		},
	}
}
