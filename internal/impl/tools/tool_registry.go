package tools

import (
	"sort"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

// ToolRegistryEntry binds a tool type name to its metadata and constructor.
// The registry is built once at startup; no reflection, no tags.
type ToolRegistryEntry struct {
	Name        string
	Description string
	ConfigKeys  []string
	Factory     func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool
}

type ToolRegistry struct {
	entries map[string]*ToolRegistryEntry
}

func NewToolRegistry() (*ToolRegistry, error) {
	registry := &ToolRegistry{}
	registry.entries = make(map[string]*ToolRegistryEntry)

	registry.entries["Azure"] = &ToolRegistryEntry{
		Name:        "Azure",
		Description: `This tool manages Azure virtual machines through the Resource Manager API: list, inspect, and start VMs in the configured subscription`,
		ConfigKeys:  []string{"azure_token", "azure_subscription_id", "azure_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewAzureTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Kibana"] = &ToolRegistryEntry{
		Name:        "Kibana",
		Description: `This tool searches saved objects (dashboards, visualizations) in a Kibana instance and reports its status`,
		ConfigKeys:  []string{"kibana_base_url", "kibana_api_key"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewKibanaTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Arxiv"] = &ToolRegistryEntry{
		Name:        "Arxiv",
		Description: `This tool searches the arXiv preprint archive and returns papers with authors, categories, and PDF links`,
		ConfigKeys:  []string{"arxiv_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewArxivTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Reddit"] = &ToolRegistryEntry{
		Name:        "Reddit",
		Description: `This tool searches Reddit posts through the public JSON API with sort and time filters`,
		ConfigKeys:  []string{"reddit_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewRedditTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Render"] = &ToolRegistryEntry{
		Name:        "Render",
		Description: `This tool manages services on Render: list and inspect services and trigger deploys`,
		ConfigKeys:  []string{"render_api_key", "render_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewRenderTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Connery"] = &ToolRegistryEntry{
		Name:        "Connery",
		Description: `This tool drives a Connery runner: discover actions, run them, and compose workflows`,
		ConfigKeys:  []string{"connery_runner_url", "connery_api_key"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewConneryTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Mailchimp"] = &ToolRegistryEntry{
		Name:        "Mailchimp",
		Description: `This tool manages Mailchimp email campaigns: list existing campaigns and create new ones with content`,
		ConfigKeys:  []string{"mailchimp_api_key", "mailchimp_from_name", "mailchimp_reply_to", "mailchimp_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewMailchimpTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["Riza"] = &ToolRegistryEntry{
		Name:        "Riza",
		Description: `This tool runs Riza ML jobs: start model training and deploy trained models`,
		ConfigKeys:  []string{"riza_api_key", "riza_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewRizaTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["GoogleTrends"] = &ToolRegistryEntry{
		Name:        "GoogleTrends",
		Description: `This tool charts search interest over time for a keyword using Google Trends`,
		ConfigKeys:  []string{"trends_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewGoogleTrendsTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["GoogleFinance"] = &ToolRegistryEntry{
		Name:        "GoogleFinance",
		Description: `This tool returns SIMULATED stock quotes and earnings for demos; it never contacts a market data provider`,
		ConfigKeys:  []string{},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewGoogleFinanceTool(name, description, configuration, logger)
		},
	}
	registry.entries["GoogleJobs"] = &ToolRegistryEntry{
		Name:        "GoogleJobs",
		Description: `This tool returns SIMULATED job market data (categories, trending roles, company profiles) for demos`,
		ConfigKeys:  []string{},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewGoogleJobsTool(name, description, configuration, logger)
		},
	}
	registry.entries["WebSearch"] = &ToolRegistryEntry{
		Name:        "WebSearch",
		Description: `This tool searches the web using the Tavily API`,
		ConfigKeys:  []string{"tavily_api_key", "tavily_base_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewWebSearchTool(name, description, configuration, client, logger)
		},
	}
	registry.entries["OpenAPI"] = &ToolRegistryEntry{
		Name:        "OpenAPI",
		Description: `This tool fetches an OpenAPI/Swagger specification and lists the endpoints a REST API offers`,
		ConfigKeys:  []string{"openapi_url"},
		Factory: func(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) entities.Tool {
			return NewOpenAPITool(name, description, configuration, client, logger)
		},
	}

	return registry, nil
}

func (t *ToolRegistry) ListEntries() ([]*ToolRegistryEntry, error) {
	var entries []*ToolRegistryEntry
	for _, entry := range t.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (t *ToolRegistry) GetEntryByName(name string) (*ToolRegistryEntry, error) {
	entry, exists := t.entries[name]
	if !exists {
		return nil, errors.InvalidInputErrorf("tool registry entry with name '%s' not found", name)
	}
	return entry, nil
}
