package defaults

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/toolbelt/toolbelt/internal/domain/interfaces"
	"github.com/toolbelt/toolbelt/internal/impl/config"
	repositories_json "github.com/toolbelt/toolbelt/internal/impl/repositories/json"
	"github.com/toolbelt/toolbelt/internal/impl/tools"
)

func newSeedFixture(t *testing.T) (interfaces.ToolRepository, *config.Config) {
	t.Helper()
	t.Setenv("TOOLBELT_DATA_DIR", t.TempDir())

	cfg, err := config.InitConfig()
	require.NoError(t, err)

	registry, err := tools.NewToolRegistry()
	require.NoError(t, err)
	repo, err := repositories_json.NewJSONToolRepository(t.TempDir(), registry, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return repo, cfg
}

func TestEnsureSeededCreatesAllDefaults(t *testing.T) {
	ctx := context.Background()
	repo, cfg := newSeedFixture(t)
	logger := zaptest.NewLogger(t)

	t.Setenv("TAVILY_API_KEY", "tvly-seeded")

	require.NoError(t, EnsureSeeded(ctx, repo, cfg, logger))

	records, err := repo.ListToolData(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(DefaultTools()))

	byName := map[string]map[string]string{}
	for _, r := range records {
		byName[r.Name] = r.Configuration
	}
	assert.Equal(t, "tvly-seeded", byName["WebSearch"]["tavily_api_key"], "set variables resolve")
	assert.Equal(t, "", byName["Render"]["render_api_key"], "unset variables downgrade to empty, not an error")
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, cfg := newSeedFixture(t)
	logger := zaptest.NewLogger(t)

	require.NoError(t, EnsureSeeded(ctx, repo, cfg, logger))
	require.NoError(t, EnsureSeeded(ctx, repo, cfg, logger))

	records, err := repo.ListToolData(ctx)
	require.NoError(t, err)
	assert.Len(t, records, len(DefaultTools()))
}

func TestDefaultToolsMatchRegistry(t *testing.T) {
	registry, err := tools.NewToolRegistry()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, seed := range DefaultTools() {
		assert.False(t, seen[seed.Name], "duplicate default name %q", seed.Name)
		seen[seed.Name] = true
		assert.NotEmpty(t, seed.ID, seed.Name)

		_, err := registry.GetEntryByName(seed.ToolType)
		assert.NoError(t, err, "default %q references an unregistered type", seed.Name)
	}
}
