// Package bridge exposes a cloud provider's app platform API as MCP tools.
package bridge

import (
	"context"
	"time"
)

// Provider is the subset of the management API the bridge forwards to.
type Provider interface {
	ListApps(ctx context.Context) ([]App, error)
	GetApp(ctx context.Context, appID string) (*App, error)
	ListDeployments(ctx context.Context, appID string) ([]Deployment, error)
	GetDeploymentLogs(ctx context.Context, req LogsRequest) (*Logs, error)
	ListDatabases(ctx context.Context) ([]Database, error)
	UpdateEnvVars(ctx context.Context, req UpdateEnvRequest) (*App, error)
	TriggerDeployment(ctx context.Context, req DeployRequest) (*Deployment, error)
}

type App struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Region       string            `json:"region,omitempty"`
	LiveURL      string            `json:"live_url,omitempty"`
	Env          map[string]string `json:"env,omitempty"`
	ActiveDeploy string            `json:"active_deployment_id,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type Deployment struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	Cause     string    `json:"cause,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Database struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Engine    string    `json:"engine"`
	Version   string    `json:"version"`
	Status    string    `json:"status"`
	Region    string    `json:"region"`
	Size      string    `json:"size"`
	Nodes     int       `json:"nodes"`
	CreatedAt time.Time `json:"created_at"`
}

// LogType selects which phase's logs are fetched.
type LogType string

const (
	LogTypeBuild  LogType = "BUILD"
	LogTypeDeploy LogType = "DEPLOY"
	LogTypeRun    LogType = "RUN"
)

type LogsRequest struct {
	AppID        string
	DeploymentID string
	Component    string
	Type         LogType
	TailLines    int
}

// Logs carries URLs to the log streams, not the log lines themselves.
type Logs struct {
	LiveURL      string   `json:"live_url,omitempty"`
	HistoricURLs []string `json:"historic_urls,omitempty"`
}

// UpdateEnvRequest merges Vars into the app-level environment. Keys already
// present are overwritten, the rest are kept.
type UpdateEnvRequest struct {
	AppID string
	Vars  map[string]string
}

type DeployRequest struct {
	AppID      string
	ForceBuild bool
}
