package repositories_json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"
	"github.com/toolbelt/toolbelt/internal/impl/tools"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// jsonToolRepository keeps the tool catalog in a single tools.json file and
// rebuilds live Tool instances through the registry whenever it changes.
type jsonToolRepository struct {
	filePath      string
	data          []*entities.ToolData
	toolInstances map[string]entities.Tool
	registry      *tools.ToolRegistry
	client        interfaces.HTTPClient
	logger        *zap.Logger
	mu            sync.RWMutex
}

func NewJSONToolRepository(dataDir string, registry *tools.ToolRegistry, client interfaces.HTTPClient, logger *zap.Logger) (interfaces.ToolRepository, error) {
	filePath := filepath.Join(dataDir, "tools.json")
	repo := &jsonToolRepository{
		filePath:      filePath,
		data:          []*entities.ToolData{},
		toolInstances: make(map[string]entities.Tool),
		registry:      registry,
		client:        client,
		logger:        logger,
	}

	if err := repo.load(); err != nil {
		return nil, err
	}
	repo.mu.Lock()
	repo.reloadToolInstancesLocked()
	repo.mu.Unlock()

	return repo, nil
}

func (r *jsonToolRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.filePath)
	if os.IsNotExist(err) {
		return nil // File doesn't exist yet, start with empty data
	}
	if err != nil {
		return fmt.Errorf("failed to read tools.json: %w", err)
	}

	var records []*entities.ToolData
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to unmarshal tools.json: %w", err)
	}

	for _, record := range records {
		if record.ID == "" {
			return fmt.Errorf("tool %q is missing an ID", record.Name)
		}
		if _, err := uuid.Parse(record.ID); err != nil {
			return fmt.Errorf("tool %q has an invalid UUID: %w", record.Name, err)
		}
	}

	r.data = records
	return nil
}

// saveLocked writes the catalog file. Callers hold the write lock.
func (r *jsonToolRepository) saveLocked() error {
	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tools: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(r.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write tools.json: %w", err)
	}

	return nil
}

// reloadToolInstancesLocked rebuilds the live instances from the catalog.
// Callers hold the write lock. Records for unknown tool types are skipped,
// not fatal, so a catalog written by a newer build still loads.
func (r *jsonToolRepository) reloadToolInstancesLocked() {
	r.toolInstances = make(map[string]entities.Tool)
	for _, toolData := range r.data {
		entry, err := r.registry.GetEntryByName(toolData.ToolType)
		if err != nil {
			r.logger.Warn("Skipping tool due to unknown type",
				zap.String("tool_type", toolData.ToolType), zap.Error(err))
			continue
		}
		tool := entry.Factory(toolData.Name, toolData.Description, toolData.Configuration, r.client, r.logger)
		r.toolInstances[toolData.Name] = tool
	}
}

func (r *jsonToolRepository) ListTools(ctx context.Context) ([]entities.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]entities.Tool, 0, len(r.toolInstances))
	for _, data := range r.data {
		if tool, exists := r.toolInstances[data.Name]; exists {
			tools = append(tools, tool)
		}
	}
	return tools, nil
}

func (r *jsonToolRepository) GetToolByName(ctx context.Context, name string) (entities.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.toolInstances[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool, nil
}

func (r *jsonToolRepository) ListToolData(ctx context.Context) ([]*entities.ToolData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toolDataCopy := make([]*entities.ToolData, len(r.data))
	for i, t := range r.data {
		copied := *t
		toolDataCopy[i] = &copied
	}
	return toolDataCopy, nil
}

func (r *jsonToolRepository) GetToolData(ctx context.Context, id string) (*entities.ToolData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, toolData := range r.data {
		if toolData.ID == id {
			copied := *toolData
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("tool data not found: %s", id)
}

func (r *jsonToolRepository) CreateTool(ctx context.Context, toolData *entities.ToolData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.toolInstances[toolData.Name]; exists {
		return fmt.Errorf("tool with name %q already exists", toolData.Name)
	}
	if _, err := r.registry.GetEntryByName(toolData.ToolType); err != nil {
		return err
	}

	if toolData.ID == "" {
		toolData.ID = uuid.New().String()
	}
	toolData.CreatedAt = time.Now()
	toolData.UpdatedAt = toolData.CreatedAt

	r.data = append(r.data, toolData)
	if err := r.saveLocked(); err != nil {
		return err
	}
	r.reloadToolInstancesLocked()
	return nil
}

func (r *jsonToolRepository) UpdateTool(ctx context.Context, toolData *entities.ToolData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.data {
		if t.ID == toolData.ID {
			toolData.UpdatedAt = time.Now()
			r.data[i] = toolData
			if err := r.saveLocked(); err != nil {
				return err
			}
			r.reloadToolInstancesLocked()
			return nil
		}
	}
	return fmt.Errorf("tool data not found: %s", toolData.ID)
}

func (r *jsonToolRepository) DeleteTool(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.data {
		if t.ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			if err := r.saveLocked(); err != nil {
				return err
			}
			r.reloadToolInstancesLocked()
			return nil
		}
	}
	return fmt.Errorf("tool data not found: %s", id)
}

var _ interfaces.ToolRepository = (*jsonToolRepository)(nil)
