package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xab-mack/reguard/internal/checker"
	"github.com/xab-mack/reguard/internal/model"
	"github.com/xab-mack/reguard/internal/slither"
)

// ErrContractNotFound means a requested contract name is absent from the
// loaded project. Raised at the lookup boundary, before any report is built.
var ErrContractNotFound = errors.New("contract not found in project")

type loaderFunc func(ctx context.Context, path string, opts slither.Options) (*model.Project, error)

type Engine struct {
	loader loaderFunc
}

func New() *Engine {
	return &Engine{loader: slither.LoadProject}
}

// Run loads the project model, resolves the requested contracts and checks
// each. Contracts are checked concurrently; report order follows the request.
func (e *Engine) Run(ctx context.Context, req model.CheckRequest) (*model.CheckResult, error) {
	start := time.Now()
	if req.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.TimeBudget)
		defer cancel()
	}

	proj, err := e.loader(ctx, req.Path, slither.Options{SlitherPath: req.SlitherPath, Args: req.SlitherArgs})
	if err != nil {
		return nil, err
	}

	names := req.Contracts
	if req.AllContracts {
		names = proj.ContractNames()
	}
	// resolve every name up front so a missing contract fails before any report
	targets := make([]*model.Contract, len(names))
	for i, n := range names {
		c := proj.Contract(n)
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrContractNotFound, n)
		}
		targets[i] = c
	}

	pol := checker.Policy{
		RequiredModifiers: req.RequiredModifiers,
		Whitelist:         req.Whitelist,
	}
	if req.WhitelistFile != "" {
		extra, err := LoadWhitelist(req.WhitelistFile)
		if err != nil {
			return nil, err
		}
		pol.Whitelist = append(append([]string{}, pol.Whitelist...), extra...)
	}

	reports := make([]model.Report, len(targets))
	var g errgroup.Group
	g.SetLimit(max(2, runtime.NumCPU()))
	for i, c := range targets {
		i, c := i, c
		g.Go(func() error {
			reports[i] = checker.Check(c, pol)
			return nil
		})
	}
	_ = g.Wait()

	var findings []model.Finding
	for _, r := range reports {
		findings = append(findings, r.Findings...)
	}
	return &model.CheckResult{Reports: reports, Findings: findings, Elapsed: time.Since(start)}, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
