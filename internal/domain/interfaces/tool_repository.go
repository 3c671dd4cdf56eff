package interfaces

import (
	"context"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
)

// ToolRepository persists the tool catalog (registered adapters and their
// configuration overrides) and hands out live Tool instances built from it.
type ToolRepository interface {
	CreateTool(ctx context.Context, data *entities.ToolData) error
	UpdateTool(ctx context.Context, data *entities.ToolData) error
	DeleteTool(ctx context.Context, id string) error
	GetToolData(ctx context.Context, id string) (*entities.ToolData, error)
	GetToolByName(ctx context.Context, name string) (entities.Tool, error)
	ListTools(ctx context.Context) ([]entities.Tool, error)
	ListToolData(ctx context.Context) ([]*entities.ToolData, error)
}
