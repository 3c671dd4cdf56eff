package services

import (
	"context"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

// ToolService sits between the entrypoints (CLI, HTTP) and the tool
// repository. Execution goes through here so there is one place that looks
// up a tool and invokes it.
type ToolService interface {
	ListTools(ctx context.Context) ([]entities.Tool, error)
	ListToolData(ctx context.Context) ([]*entities.ToolData, error)
	GetTool(ctx context.Context, name string) (entities.Tool, error)
	// ExecuteTool runs the named tool with the raw JSON arguments and
	// returns the serialized result envelope. The tool contract guarantees
	// the envelope is well formed even when the provider call failed.
	ExecuteTool(ctx context.Context, name, arguments string) (string, error)
}

type toolService struct {
	toolRepo interfaces.ToolRepository
	logger   *zap.Logger
}

func NewToolService(toolRepo interfaces.ToolRepository, logger *zap.Logger) *toolService {
	return &toolService{
		toolRepo: toolRepo,
		logger:   logger,
	}
}

func (s *toolService) ListTools(ctx context.Context) ([]entities.Tool, error) {
	return s.toolRepo.ListTools(ctx)
}

func (s *toolService) ListToolData(ctx context.Context) ([]*entities.ToolData, error) {
	return s.toolRepo.ListToolData(ctx)
}

func (s *toolService) GetTool(ctx context.Context, name string) (entities.Tool, error) {
	return s.toolRepo.GetToolByName(ctx, name)
}

func (s *toolService) ExecuteTool(ctx context.Context, name, arguments string) (string, error) {
	tool, err := s.toolRepo.GetToolByName(ctx, name)
	if err != nil {
		return "", err
	}
	s.logger.Debug("Executing tool", zap.String("tool", name))
	return tool.Execute(arguments)
}

var _ ToolService = (*toolService)(nil)
