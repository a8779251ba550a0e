// Package mcp exposes the tool registry as a Model Context Protocol server
// over stdio.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "medlar"
	serverVersion = "0.1.0"
)

// NewServer builds an MCP server publishing every enabled registry tool.
// Tool calls are routed through Registry.Dispatch, so the protocol layer
// only ever sees text content: all failure classes arrive as "Error: ..."
// messages, never as protocol errors.
func NewServer(registry *tool.Registry) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	for _, desc := range registry.Descriptors() {
		name := desc.Name
		server.AddTool(&mcp.Tool{
			Name:        name,
			Description: desc.Description,
			InputSchema: desc.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := decodeArguments(req.Params.Arguments)
			if err != nil {
				return textResult("Error: invalid arguments: " + err.Error()), nil
			}

			logging.From(ctx).Debug("tool call", "tool", name)
			return textResult(registry.Dispatch(ctx, name, args)), nil
		})
	}

	return server
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects
func Run(ctx context.Context, registry *tool.Registry) error {
	server := NewServer(registry)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "MCP server terminated")
	}
	return nil
}

// decodeArguments normalizes the wire arguments into a flat bag. The SDK
// surfaces them either as raw JSON or as an already-decoded map.
func decodeArguments(v any) (map[string]any, error) {
	switch raw := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return raw, nil
	case json.RawMessage:
		if len(raw) == 0 {
			return map[string]any{}, nil
		}
		var args map[string]any
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, goerr.Wrap(err, "failed to decode tool arguments")
		}
		return args, nil
	default:
		return nil, goerr.New("unexpected arguments type")
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
