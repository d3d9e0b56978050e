package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"items-backend/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server maps MCP tool calls onto a Provider.
type Server struct {
	provider Provider
	logger   logging.Logger
	mcp      *server.MCPServer
}

func NewServer(provider Provider, name, version string, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		provider: provider,
		logger:   logger,
		mcp:      server.NewMCPServer(name, version, server.WithToolCapabilities(false), server.WithRecovery()),
	}
	s.mcp.AddTools(s.Tools()...)
	return s
}

// ServeStdio blocks serving newline-delimited JSON-RPC on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("list_apps",
				mcp.WithDescription("List all apps on the account"),
			),
			Handler: s.listApps,
		},
		{
			Tool: mcp.NewTool("get_app",
				mcp.WithDescription("Get a single app with its environment"),
				mcp.WithString("app_id", mcp.Required(), mcp.Description("App ID")),
			),
			Handler: s.getApp,
		},
		{
			Tool: mcp.NewTool("list_deployments",
				mcp.WithDescription("List deployments of an app, newest first"),
				mcp.WithString("app_id", mcp.Required(), mcp.Description("App ID")),
			),
			Handler: s.listDeployments,
		},
		{
			Tool: mcp.NewTool("get_deployment_logs",
				mcp.WithDescription("Get log URLs for a deployment"),
				mcp.WithString("app_id", mcp.Required(), mcp.Description("App ID")),
				mcp.WithString("deployment_id", mcp.Required(), mcp.Description("Deployment ID")),
				mcp.WithString("component", mcp.Description("Component name, empty for all")),
				mcp.WithString("type", mcp.Description("BUILD, DEPLOY or RUN"), mcp.Enum("BUILD", "DEPLOY", "RUN")),
				mcp.WithNumber("tail_lines", mcp.Description("Number of trailing lines")),
			),
			Handler: s.getDeploymentLogs,
		},
		{
			Tool: mcp.NewTool("list_databases",
				mcp.WithDescription("List managed database clusters"),
			),
			Handler: s.listDatabases,
		},
		{
			Tool: mcp.NewTool("update_env_vars",
				mcp.WithDescription("Set app-level environment variables; other variables are kept"),
				mcp.WithString("app_id", mcp.Required(), mcp.Description("App ID")),
				mcp.WithObject("vars", mcp.Required(), mcp.Description("Map of variable name to value")),
			),
			Handler: s.updateEnvVars,
		},
		{
			Tool: mcp.NewTool("trigger_deployment",
				mcp.WithDescription("Start a new deployment of an app"),
				mcp.WithString("app_id", mcp.Required(), mcp.Description("App ID")),
				mcp.WithBoolean("force_build", mcp.Description("Rebuild even if the source did not change")),
			),
			Handler: s.triggerDeployment,
		},
	}
}

// result renders v as indented JSON, or turns err into a tool error the
// client can show.
func (s *Server) result(ctx context.Context, tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		s.logger.Warn(ctx, "provider call failed", "tool", tool, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", tool, err)
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) listApps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	apps, err := s.provider.ListApps(ctx)
	return s.result(ctx, "list_apps", apps, err)
}

func (s *Server) getApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appID, err := req.RequireString("app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	app, err := s.provider.GetApp(ctx, appID)
	return s.result(ctx, "get_app", app, err)
}

func (s *Server) listDeployments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appID, err := req.RequireString("app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deployments, err := s.provider.ListDeployments(ctx, appID)
	return s.result(ctx, "list_deployments", deployments, err)
}

func (s *Server) getDeploymentLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appID, err := req.RequireString("app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deploymentID, err := req.RequireString("deployment_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logs, err := s.provider.GetDeploymentLogs(ctx, LogsRequest{
		AppID:        appID,
		DeploymentID: deploymentID,
		Component:    req.GetString("component", ""),
		Type:         LogType(req.GetString("type", string(LogTypeRun))),
		TailLines:    req.GetInt("tail_lines", 0),
	})
	return s.result(ctx, "get_deployment_logs", logs, err)
}

func (s *Server) listDatabases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databases, err := s.provider.ListDatabases(ctx)
	return s.result(ctx, "list_databases", databases, err)
}

func (s *Server) updateEnvVars(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appID, err := req.RequireString("app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	vars, err := stringMap(req.GetArguments()["vars"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	app, err := s.provider.UpdateEnvVars(ctx, UpdateEnvRequest{AppID: appID, Vars: vars})
	return s.result(ctx, "update_env_vars", app, err)
}

func (s *Server) triggerDeployment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	appID, err := req.RequireString("app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deployment, err := s.provider.TriggerDeployment(ctx, DeployRequest{
		AppID:      appID,
		ForceBuild: req.GetBool("force_build", false),
	})
	return s.result(ctx, "trigger_deployment", deployment, err)
}

func stringMap(raw any) (map[string]string, error) {
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, fmt.Errorf("vars must be a non-empty object")
	}
	vars := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			vars[k] = val
		case float64, bool:
			vars[k] = fmt.Sprint(val)
		default:
			return nil, fmt.Errorf("value of %q must be a string", k)
		}
	}
	return vars, nil
}
