package apicontrollers

import (
	"io"
	"net/http"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ToolController struct {
	logger      *zap.Logger
	toolService services.ToolService
}

func NewToolController(logger *zap.Logger, toolService services.ToolService) *ToolController {
	return &ToolController{
		logger:      logger,
		toolService: toolService,
	}
}

// RegisterRoutes registers all tool-related routes with Echo
func (c *ToolController) RegisterRoutes(e *echo.Group) {
	e.GET("/tools", c.ListTools)
	e.GET("/tools/:name", c.GetTool)
	e.POST("/tools/:name/execute", c.ExecuteTool)
}

type toolView struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []paramView `json:"parameters"`
}

type paramView struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
}

func newToolView(tool entities.Tool) toolView {
	view := toolView{
		Name:        tool.Name(),
		Description: tool.Description(),
		Parameters:  []paramView{},
	}
	for _, p := range tool.Parameters() {
		view.Parameters = append(view.Parameters, paramView{
			Name:        p.Name,
			Type:        p.Type,
			Enum:        p.Enum,
			Description: p.Description,
			Required:    p.Required,
		})
	}
	return view
}

// ListTools returns every registered tool with its parameter schema.
func (c *ToolController) ListTools(ctx echo.Context) error {
	tools, err := c.toolService.ListTools(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Failed to list tools", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list tools"})
	}

	views := make([]toolView, 0, len(tools))
	for _, tool := range tools {
		views = append(views, newToolView(tool))
	}
	return ctx.JSON(http.StatusOK, views)
}

// GetTool returns one tool by name.
func (c *ToolController) GetTool(ctx echo.Context) error {
	tool, err := c.toolService.GetTool(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, newToolView(tool))
}

// ExecuteTool runs a tool with the request body as its JSON arguments. The
// response is always the tool's result envelope with HTTP 200: failures
// travel inside the envelope, the way an agent loop consumes them.
func (c *ToolController) ExecuteTool(ctx echo.Context) error {
	name := ctx.Param("name")

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
	}

	result, err := c.toolService.ExecuteTool(ctx.Request().Context(), name, string(body))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}

	return ctx.JSONBlob(http.StatusOK, []byte(result))
}
