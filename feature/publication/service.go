package publication

import (
	"context"
	"fmt"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"
	"squeezer/core/utils"

	"go.uber.org/zap"
)

// VersionField is the natural key of a publication.
const VersionField = "repository_version"

// Service reconciles publications.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new publication service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run reconciles the publication described by p.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	def, err := resource.For(p.plugin(), "publication")
	if err != nil {
		return reconcile.Result{}, err
	}
	ctx = pulp.WithDryRun(ctx, checkMode)

	key := reconcile.KeyOf(VersionField, nil)
	if p.Repository != nil && *p.Repository != "" {
		href, err := s.versionHref(ctx, p)
		if err != nil {
			return reconcile.Result{}, err
		}
		key = reconcile.KeyOf(VersionField, href)
	}

	inv := reconcile.Invocation{
		Key:     key,
		Desired: reconcile.Attributes{},
		State:   reconcile.State(p.State),
		DryRun:  checkMode,
	}
	return s.engine.Process(ctx, reconcile.Target{Context: resource.New(s.client, def)}, inv)
}

// versionHref resolves the repository version to publish.
func (s *Service) versionHref(ctx context.Context, p Params) (string, error) {
	def, err := resource.For(p.plugin(), "repository")
	if err != nil {
		return "", err
	}
	repo, err := reconcile.Resolve(ctx, resource.New(s.client, def), reconcile.KeyOf("name", *p.Repository))
	if err != nil {
		return "", fmt.Errorf("repository %q: %w", *p.Repository, err)
	}

	if p.Version != nil {
		return fmt.Sprintf("%s%d/", utils.ToString(repo["versions_href"]), *p.Version), nil
	}
	href := utils.ToString(repo["latest_version_href"])
	if href == "" {
		return "", reconcile.Preconditionf("repository %q has no versions", *p.Repository)
	}
	return href, nil
}
