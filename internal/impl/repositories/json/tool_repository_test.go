package repositories_json

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"
	"github.com/toolbelt/toolbelt/internal/impl/tools"
)

func newTestRepository(t *testing.T, dataDir string) interfaces.ToolRepository {
	t.Helper()
	registry, err := tools.NewToolRegistry()
	require.NoError(t, err)
	repo, err := NewJSONToolRepository(dataDir, registry, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return repo
}

func TestJSONToolRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	repo := newTestRepository(t, dataDir)

	toolData := &entities.ToolData{
		ToolType:      "Reddit",
		Name:          "reddit",
		Description:   "Search Reddit",
		Configuration: map[string]string{"reddit_base_url": "https://www.reddit.com"},
	}
	require.NoError(t, repo.CreateTool(ctx, toolData))
	assert.NotEmpty(t, toolData.ID, "create assigns a UUID")
	assert.False(t, toolData.CreatedAt.IsZero())

	listed, err := repo.ListToolData(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "reddit", listed[0].Name)

	instance, err := repo.GetToolByName(ctx, "reddit")
	require.NoError(t, err)
	assert.Equal(t, "reddit", instance.Name())

	toolData.Description = "Search Reddit posts"
	require.NoError(t, repo.UpdateTool(ctx, toolData))
	updated, err := repo.GetToolData(ctx, toolData.ID)
	require.NoError(t, err)
	assert.Equal(t, "Search Reddit posts", updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	require.NoError(t, repo.DeleteTool(ctx, toolData.ID))
	listed, err = repo.ListToolData(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
	_, err = repo.GetToolByName(ctx, "reddit")
	assert.Error(t, err)
}

func TestJSONToolRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	repo := newTestRepository(t, dataDir)

	require.NoError(t, repo.CreateTool(ctx, &entities.ToolData{
		ToolType: "Arxiv",
		Name:     "arxiv",
	}))

	reopened := newTestRepository(t, dataDir)
	instance, err := reopened.GetToolByName(ctx, "arxiv")
	require.NoError(t, err)
	assert.Equal(t, "arxiv", instance.Name())
}

func TestJSONToolRepositoryRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, t.TempDir())

	require.NoError(t, repo.CreateTool(ctx, &entities.ToolData{ToolType: "Kibana", Name: "kibana"}))
	err := repo.CreateTool(ctx, &entities.ToolData{ToolType: "Kibana", Name: "kibana"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestJSONToolRepositoryRejectsUnknownToolType(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, t.TempDir())

	err := repo.CreateTool(ctx, &entities.ToolData{ToolType: "Betamax", Name: "betamax"})
	assert.Error(t, err)
}

func TestJSONToolRepositoryRejectsInvalidUUIDInFile(t *testing.T) {
	dataDir := t.TempDir()
	corrupted := `[{"id": "not-a-uuid", "tool_type": "Reddit", "name": "reddit"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "tools.json"), []byte(corrupted), 0644))

	registry, err := tools.NewToolRegistry()
	require.NoError(t, err)
	_, err = NewJSONToolRepository(dataDir, registry, nil, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UUID")
}

func TestJSONToolRepositorySkipsUnknownTypesOnLoad(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	file := `[
		{"id": "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", "tool_type": "Reddit", "name": "reddit"},
		{"id": "6BA7B811-9DAD-11D1-80B4-00C04FD430C8", "tool_type": "Betamax", "name": "betamax"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "tools.json"), []byte(file), 0644))

	repo := newTestRepository(t, dataDir)
	instances, err := repo.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, instances, 1, "the unknown type is skipped, not fatal")
	assert.Equal(t, "reddit", instances[0].Name())
}
