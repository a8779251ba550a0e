package cli

import (
	"context"

	"github.com/m-mizutani/medlar/pkg/service/mcp"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP tool server over stdio",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			store, err := cfg.newStore(ctx)
			if err != nil {
				return err
			}

			llm, err := cfg.newLLM(ctx)
			if err != nil {
				return err
			}

			registry, err := cfg.newRegistry(llm, store)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("starting MCP server",
				"patients", len(store.Patients()),
				"tools", len(registry.Names()),
			)

			return mcp.Run(ctx, registry)
		},
	}
}
