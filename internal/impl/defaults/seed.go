package defaults

import (
	"context"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"
	"github.com/toolbelt/toolbelt/internal/impl/config"

	"go.uber.org/zap"
)

// EnsureSeeded writes the default catalog records that are not present yet.
// Configuration references are resolved against the environment; a missing
// variable downgrades to an empty value with a warning, so an unset
// credential disables auth on that tool instead of blocking startup.
func EnsureSeeded(ctx context.Context, repo interfaces.ToolRepository, cfg *config.Config, logger *zap.Logger) error {
	existing, err := repo.ListToolData(ctx)
	if err != nil {
		return err
	}

	present := make(map[string]bool, len(existing))
	for _, data := range existing {
		present[data.Name] = true
	}

	for _, seed := range DefaultTools() {
		if present[seed.Name] {
			continue
		}

		record := &entities.ToolData{
			ID:            seed.ID,
			ToolType:      seed.ToolType,
			Name:          seed.Name,
			Description:   seed.Description,
			Configuration: resolveLenient(seed.Configuration, cfg, logger),
		}
		if err := repo.CreateTool(ctx, record); err != nil {
			return err
		}
		logger.Debug("Seeded default tool", zap.String("name", seed.Name))
	}

	return nil
}

func resolveLenient(configuration map[string]string, cfg *config.Config, logger *zap.Logger) map[string]string {
	resolved := make(map[string]string, len(configuration))
	for key, value := range configuration {
		v, err := cfg.ResolveEnvironmentVariable(value)
		if err != nil {
			logger.Warn("Leaving tool configuration value empty",
				zap.String("key", key), zap.Error(err))
			v = ""
		}
		resolved[key] = v
	}
	return resolved
}
