package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
)

type fakeTool struct {
	name string
}

func (f *fakeTool) Name() string                            { return f.name }
func (f *fakeTool) Description() string                     { return "fake" }
func (f *fakeTool) Configuration() map[string]string        { return nil }
func (f *fakeTool) UpdateConfiguration(_ map[string]string) {}
func (f *fakeTool) FullDescription() string                 { return "fake" }
func (f *fakeTool) Parameters() []entities.Parameter        { return nil }
func (f *fakeTool) Execute(arguments string) (string, error) {
	return `{"success":true,"data":{"echo":` + fmt.Sprintf("%q", arguments) + `}}`, nil
}

type fakeRepo struct {
	tools map[string]entities.Tool
}

func (r *fakeRepo) CreateTool(context.Context, *entities.ToolData) error { return nil }
func (r *fakeRepo) UpdateTool(context.Context, *entities.ToolData) error { return nil }
func (r *fakeRepo) DeleteTool(context.Context, string) error             { return nil }
func (r *fakeRepo) GetToolData(context.Context, string) (*entities.ToolData, error) {
	return nil, fmt.Errorf("not implemented")
}
func (r *fakeRepo) ListToolData(context.Context) ([]*entities.ToolData, error) { return nil, nil }

func (r *fakeRepo) ListTools(context.Context) ([]entities.Tool, error) {
	var out []entities.Tool
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepo) GetToolByName(_ context.Context, name string) (entities.Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return t, nil
}

func TestToolServiceExecuteTool(t *testing.T) {
	repo := &fakeRepo{tools: map[string]entities.Tool{
		"fake": &fakeTool{name: "fake"},
	}}
	service := NewToolService(repo, zaptest.NewLogger(t))

	result, err := service.ExecuteTool(context.Background(), "fake", `{"x":1}`)
	require.NoError(t, err)
	assert.Contains(t, result, `"success":true`)

	_, err = service.ExecuteTool(context.Background(), "missing", `{}`)
	assert.Error(t, err, "unknown tool is the caller's error, not an envelope")
}

func TestToolServiceListTools(t *testing.T) {
	repo := &fakeRepo{tools: map[string]entities.Tool{
		"a": &fakeTool{name: "a"},
		"b": &fakeTool{name: "b"},
	}}
	service := NewToolService(repo, zaptest.NewLogger(t))

	tools, err := service.ListTools(context.Background())
	require.NoError(t, err)
	assert.Len(t, tools, 2)
}
