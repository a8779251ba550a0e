package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/adapter"
	"github.com/m-mizutani/medlar/pkg/repository"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/m-mizutani/medlar/pkg/tool/medquery"
	"github.com/m-mizutani/medlar/pkg/tool/patient"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values shared across commands
type config struct {
	// Data sources
	dataDir    string
	whoopDir   string
	policyFile string

	// LLM provider
	provider        string
	geminiProject   string
	geminiLocation  string
	geminiModel     string
	anthropicAPIKey string
	claudeModel     string

	logLevel string
}

// globalFlags returns common flags with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory containing patients.csv and visits.json",
			Value:       "doctor_data",
			Sources:     cli.EnvVars("MEDLAR_DATA_DIR"),
			Destination: &cfg.dataDir,
		},
		&cli.StringFlag{
			Name:        "whoop-dir",
			Usage:       "Directory containing Whoop wearable CSV files",
			Value:       "whoop_data",
			Sources:     cli.EnvVars("MEDLAR_WHOOP_DIR"),
			Destination: &cfg.whoopDir,
		},
		&cli.StringFlag{
			Name:        "tool-policy",
			Usage:       "YAML file with tool enable/disable overrides",
			Value:       "tools.yml",
			Sources:     cli.EnvVars("MEDLAR_TOOL_POLICY"),
			Destination: &cfg.policyFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("MEDLAR_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for LLM provider configuration
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm",
			Usage:       "LLM provider (gemini or claude)",
			Value:       "gemini",
			Sources:     cli.EnvVars("MEDLAR_LLM"),
			Destination: &cfg.provider,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("MEDLAR_GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key",
			Sources:     cli.EnvVars("ANTHROPIC_API_KEY"),
			Destination: &cfg.anthropicAPIKey,
		},
		&cli.StringFlag{
			Name:        "claude-model",
			Usage:       "Claude model name",
			Sources:     cli.EnvVars("MEDLAR_CLAUDE_MODEL"),
			Destination: &cfg.claudeModel,
		},
	}
}

// setupLogger installs the configured logger as the default and attaches
// it to the context
func (cfg *config) setupLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newStore loads the flat-file patient store
func (cfg *config) newStore(ctx context.Context) (repository.Store, error) {
	store, err := repository.LoadFlatFiles(ctx, cfg.dataDir, cfg.whoopDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load patient store")
	}
	return store, nil
}

// newLLM creates the configured LLM provider
func (cfg *config) newLLM(ctx context.Context) (adapter.LLM, error) {
	switch cfg.provider {
	case "gemini":
		if cfg.geminiProject == "" {
			return nil, goerr.New("gemini-project is required")
		}
		return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation,
			adapter.WithGenerativeModel(cfg.geminiModel))

	case "claude":
		if cfg.anthropicAPIKey == "" {
			return nil, goerr.New("anthropic-api-key is required")
		}
		var opts []adapter.ClaudeOption
		if cfg.claudeModel != "" {
			opts = append(opts, adapter.WithClaudeModel(cfg.claudeModel))
		}
		return adapter.NewClaude(cfg.anthropicAPIKey, opts...), nil

	default:
		return nil, goerr.New("unsupported LLM provider",
			goerr.V("provider", cfg.provider),
			goerr.V("supported", []string{"gemini", "claude"}))
	}
}

// newRegistry builds the full tool table and applies the policy file.
// Metadata-only callers (the tool command) may pass nil dependencies;
// descriptors are static.
func (cfg *config) newRegistry(llm adapter.LLM, store repository.Store) (*tool.Registry, error) {
	tools := []tool.Tool{
		medquery.NewQuery(llm),
		medquery.NewSymptomChecker(llm),
		patient.NewOverview(store),
		patient.NewVisits(store),
	}
	for _, w := range patient.NewAllWearables(store) {
		tools = append(tools, w)
	}

	registry, err := tool.New(tools...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build tool registry")
	}

	policy, err := tool.LoadPolicy(cfg.policyFile)
	if err != nil {
		return nil, err
	}
	registry.Apply(policy)

	return registry, nil
}
