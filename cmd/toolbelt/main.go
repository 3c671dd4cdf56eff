package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/toolbelt/toolbelt/internal/domain/services"
	"github.com/toolbelt/toolbelt/internal/impl/config"
	"github.com/toolbelt/toolbelt/internal/impl/defaults"
	repositoriesJson "github.com/toolbelt/toolbelt/internal/impl/repositories/json"
	"github.com/toolbelt/toolbelt/internal/impl/tools"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: toolbelt [flags] <command>

Commands:
  list                    List the registered tools
  show <tool>             Show a tool's description and parameters
  exec <tool> [<json>]    Execute a tool with JSON arguments

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	registry, err := tools.NewToolRegistry()
	if err != nil {
		logger.Fatal("Failed to initialize tool registry", zap.Error(err))
	}

	toolRepo, err := repositoriesJson.NewJSONToolRepository(cfg.DataDir, registry, nil, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tool repository", zap.Error(err))
	}

	ctx := context.Background()
	if err := defaults.EnsureSeeded(ctx, toolRepo, cfg, logger); err != nil {
		logger.Fatal("Failed to seed default tools", zap.Error(err))
	}

	toolService := services.NewToolService(toolRepo, logger)

	switch flag.Arg(0) {
	case "list":
		listTools(ctx, toolService)
	case "show":
		if flag.NArg() < 2 {
			usage()
			os.Exit(1)
		}
		showTool(ctx, toolService, flag.Arg(1))
	case "exec":
		if flag.NArg() < 2 {
			usage()
			os.Exit(1)
		}
		arguments := "{}"
		if flag.NArg() > 2 {
			arguments = flag.Arg(2)
		}
		execTool(ctx, toolService, flag.Arg(1), arguments)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", flag.Arg(0))
		usage()
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func listTools(ctx context.Context, toolService services.ToolService) {
	records, err := toolService.ListToolData(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list tools: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-16s %-14s %s\n", "NAME", "UPDATED", "DESCRIPTION")
	for _, record := range records {
		fmt.Printf("%-16s %-14s %s\n", record.Name, humanize.Time(record.UpdatedAt), record.Description)
	}
}

func showTool(ctx context.Context, toolService services.ToolService, name string) {
	tool, err := toolService.GetTool(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Println(tool.FullDescription())
	fmt.Println("Parameters:")
	for _, p := range tool.Parameters() {
		required := ""
		if p.Required {
			required = " (required)"
		}
		fmt.Printf("  %-14s %-8s%s  %s\n", p.Name, p.Type, required, p.Description)
	}
}

func execTool(ctx context.Context, toolService services.ToolService, name, arguments string) {
	result, err := toolService.ExecuteTool(ctx, name, arguments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(result)
}
