package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/urfave/cli/v3"
)

func toolCommand() *cli.Command {
	return &cli.Command{
		Name:  "tool",
		Usage: "Inspect and manage registered tools",
		Commands: []*cli.Command{
			toolListCommand(),
			toolSetCommand("enable", true),
			toolSetCommand("disable", false),
		},
	}
}

func toolListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List all tools grouped by category",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			// Descriptors are static, no store or LLM required
			registry, err := cfg.newRegistry(nil, nil)
			if err != nil {
				return err
			}

			byCategory := registry.ByCategory()
			for _, category := range []model.ToolCategory{model.CategoryGeneral, model.CategoryPatientData} {
				descriptors := byCategory[category]
				if len(descriptors) == 0 {
					continue
				}

				fmt.Fprintf(c.Root().Writer, "%s:\n", category)
				for _, d := range descriptors {
					status := "enabled"
					if !d.Enabled {
						status = "disabled"
					}
					fmt.Fprintf(c.Root().Writer, "  %-40s [%s] %s\n", d.Name, status, d.Description)
				}
				fmt.Fprintln(c.Root().Writer)
			}

			return nil
		},
	}
}

func toolSetCommand(name string, enabled bool) *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("%s a tool by name", name),
		ArgsUsage: "<tool name>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			toolName := c.Args().First()
			if toolName == "" {
				return goerr.New("tool name is required")
			}

			registry, err := cfg.newRegistry(nil, nil)
			if err != nil {
				return err
			}
			if _, ok := registry.Get(toolName); !ok {
				return goerr.New("unknown tool", goerr.V("name", toolName))
			}

			policy, err := tool.LoadPolicy(cfg.policyFile)
			if err != nil {
				return err
			}
			policy.Set(toolName, enabled)
			if err := policy.Save(cfg.policyFile); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Tool '%s' %sd\n", toolName, name)
			return nil
		},
	}
}
