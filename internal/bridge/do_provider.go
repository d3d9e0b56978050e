package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/digitalocean/godo"
)

const perPage = 100

// DOProvider talks to the DigitalOcean App Platform and Databases APIs.
type DOProvider struct {
	client *godo.Client
}

func NewDOProvider(token string) (*DOProvider, error) {
	if token == "" {
		return nil, errors.New("bridge: api token must not be empty")
	}
	return &DOProvider{client: godo.NewFromToken(token)}, nil
}

// NewDOProviderWithClient points the provider at baseURL using httpClient.
func NewDOProviderWithClient(httpClient *http.Client, baseURL string) (*DOProvider, error) {
	client, err := godo.New(httpClient, godo.SetBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}
	return &DOProvider{client: client}, nil
}

func lastPage(resp *godo.Response) bool {
	return resp == nil || resp.Links == nil || resp.Links.IsLastPage()
}

func (p *DOProvider) ListApps(ctx context.Context) ([]App, error) {
	var apps []App
	opt := &godo.ListOptions{Page: 1, PerPage: perPage}
	for {
		page, resp, err := p.client.Apps.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing apps: %w", err)
		}
		for _, a := range page {
			apps = append(apps, toApp(a))
		}
		if lastPage(resp) {
			return apps, nil
		}
		opt.Page++
	}
}

func (p *DOProvider) GetApp(ctx context.Context, appID string) (*App, error) {
	a, _, err := p.client.Apps.Get(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("getting app %s: %w", appID, err)
	}
	app := toApp(a)
	return &app, nil
}

func (p *DOProvider) ListDeployments(ctx context.Context, appID string) ([]Deployment, error) {
	var deployments []Deployment
	opt := &godo.ListOptions{Page: 1, PerPage: perPage}
	for {
		page, resp, err := p.client.Apps.ListDeployments(ctx, appID, opt)
		if err != nil {
			return nil, fmt.Errorf("listing deployments of %s: %w", appID, err)
		}
		for _, d := range page {
			deployments = append(deployments, toDeployment(d))
		}
		if lastPage(resp) {
			return deployments, nil
		}
		opt.Page++
	}
}

func (p *DOProvider) GetDeploymentLogs(ctx context.Context, req LogsRequest) (*Logs, error) {
	logType := godo.AppLogType(req.Type)
	if logType == "" {
		logType = godo.AppLogTypeRun
	}
	logs, _, err := p.client.Apps.GetLogs(ctx, req.AppID, req.DeploymentID, req.Component, logType, false, req.TailLines)
	if err != nil {
		return nil, fmt.Errorf("getting logs of deployment %s: %w", req.DeploymentID, err)
	}
	return &Logs{LiveURL: logs.LiveURL, HistoricURLs: logs.HistoricURLs}, nil
}

func (p *DOProvider) ListDatabases(ctx context.Context) ([]Database, error) {
	var databases []Database
	opt := &godo.ListOptions{Page: 1, PerPage: perPage}
	for {
		page, resp, err := p.client.Databases.List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("listing databases: %w", err)
		}
		for _, db := range page {
			databases = append(databases, Database{
				ID:        db.ID,
				Name:      db.Name,
				Engine:    db.EngineSlug,
				Version:   db.VersionSlug,
				Status:    db.Status,
				Region:    db.RegionSlug,
				Size:      db.SizeSlug,
				Nodes:     db.NumNodes,
				CreatedAt: db.CreatedAt,
			})
		}
		if lastPage(resp) {
			return databases, nil
		}
		opt.Page++
	}
}

// UpdateEnvVars reads the current spec, merges req.Vars into its app-level
// envs and writes the spec back.
func (p *DOProvider) UpdateEnvVars(ctx context.Context, req UpdateEnvRequest) (*App, error) {
	current, _, err := p.client.Apps.Get(ctx, req.AppID)
	if err != nil {
		return nil, fmt.Errorf("getting app %s: %w", req.AppID, err)
	}
	if current.Spec == nil {
		return nil, fmt.Errorf("app %s has no spec", req.AppID)
	}

	spec := *current.Spec
	spec.Envs = mergeEnv(spec.Envs, req.Vars)

	updated, _, err := p.client.Apps.Update(ctx, req.AppID, &godo.AppUpdateRequest{Spec: &spec})
	if err != nil {
		return nil, fmt.Errorf("updating app %s: %w", req.AppID, err)
	}
	app := toApp(updated)
	return &app, nil
}

func (p *DOProvider) TriggerDeployment(ctx context.Context, req DeployRequest) (*Deployment, error) {
	d, _, err := p.client.Apps.CreateDeployment(ctx, req.AppID, &godo.DeploymentCreateRequest{ForceBuild: req.ForceBuild})
	if err != nil {
		return nil, fmt.Errorf("creating deployment for %s: %w", req.AppID, err)
	}
	deployment := toDeployment(d)
	return &deployment, nil
}

// mergeEnv overwrites the values of existing keys in place and appends new
// keys in sorted order. Existing scope and type are preserved.
func mergeEnv(envs []*godo.AppVariableDefinition, vars map[string]string) []*godo.AppVariableDefinition {
	merged := make([]*godo.AppVariableDefinition, 0, len(envs)+len(vars))
	seen := make(map[string]bool, len(vars))
	for _, env := range envs {
		if env == nil {
			continue
		}
		e := *env
		if v, ok := vars[e.Key]; ok {
			e.Value = v
			seen[e.Key] = true
		}
		merged = append(merged, &e)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, &godo.AppVariableDefinition{
			Key:   k,
			Value: vars[k],
			Scope: godo.AppVariableScope_RunAndBuildTime,
			Type:  godo.AppVariableType_General,
		})
	}
	return merged
}

func toApp(a *godo.App) App {
	app := App{
		ID:        a.ID,
		LiveURL:   a.LiveURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Spec != nil {
		app.Name = a.Spec.Name
		app.Region = a.Spec.Region
		if len(a.Spec.Envs) > 0 {
			app.Env = make(map[string]string, len(a.Spec.Envs))
			for _, e := range a.Spec.Envs {
				if e == nil {
					continue
				}
				if e.Type == godo.AppVariableType_Secret {
					app.Env[e.Key] = "[secret]"
					continue
				}
				app.Env[e.Key] = e.Value
			}
		}
	}
	if a.Region != nil && app.Region == "" {
		app.Region = a.Region.Slug
	}
	if a.ActiveDeployment != nil {
		app.ActiveDeploy = a.ActiveDeployment.ID
	}
	return app
}

func toDeployment(d *godo.Deployment) Deployment {
	return Deployment{
		ID:        d.ID,
		Phase:     string(d.Phase),
		Cause:     d.Cause,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
