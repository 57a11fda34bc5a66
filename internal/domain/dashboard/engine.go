// Package dashboard carga las tres fuentes en paralelo, tolera fallos parciales
// y calcula métricas solo con las fuentes que respondieron.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"nutriplan-dashboard/internal/domain/plans"
	"nutriplan-dashboard/internal/domain/recipes"
	"nutriplan-dashboard/internal/domain/users"
	"nutriplan-dashboard/internal/platform/datetime"
	"nutriplan-dashboard/internal/platform/logger"
	"nutriplan-dashboard/internal/ports/upstream"
)

type Source string

const (
	SourceUsers   Source = "users"
	SourcePlans   Source = "plans"
	SourceRecipes Source = "recipes"
)

// AllSources en el orden en que se arma el feed de actividad.
var AllSources = []Source{SourceUsers, SourcePlans, SourceRecipes}

var (
	ErrUnknownSource       = errors.New("unknown source")
	ErrSourceNotConfigured = errors.New("source not configured")
)

// ParseSources acepta una lista CSV. Vacía = todas.
func ParseSources(csv string) ([]Source, error) {
	if strings.TrimSpace(csv) == "" {
		return slices.Clone(AllSources), nil
	}
	var out []Source
	for _, part := range strings.Split(csv, ",") {
		s := Source(strings.ToLower(strings.TrimSpace(part)))
		if s == "" {
			continue
		}
		if !slices.Contains(AllSources, s) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, part)
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return slices.Clone(AllSources), nil
	}
	return out, nil
}

type UsersLister interface {
	List(ctx context.Context, f users.ListFilter) (upstream.Listing[users.User], error)
}

type PlansLister interface {
	List(ctx context.Context, f plans.ListFilter) (upstream.Listing[plans.MealPlan], error)
}

type RecipesLister interface {
	List(ctx context.Context, f recipes.ListFilter) (upstream.Listing[recipes.Recipe], error)
}

type FailureRecorder interface {
	SourceFailed(source string)
}

type Config struct {
	Users   UsersLister
	Plans   PlansLister
	Recipes RecipesLister

	Logger   logger.Logger
	Recorder FailureRecorder
}

type Engine struct {
	users   UsersLister
	plans   PlansLister
	recipes RecipesLister

	log logger.Logger
	rec FailureRecorder
	now func() time.Time
}

func NewEngine(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		users:   cfg.Users,
		plans:   cfg.Plans,
		recipes: cfg.Recipes,
		log:     log.With(map[string]any{"component": "dashboard"}),
		rec:     cfg.Recorder,
		now:     datetime.Now,
	}
}

// Snapshot es el resultado de una carga. Las fuentes fallidas conservan los
// datos de fallback en su slice pero no cuentan para las métricas.
type Snapshot struct {
	Requested []Source
	Failed    []Source

	Users   []users.User
	Plans   []plans.MealPlan
	Recipes []recipes.Recipe

	LoadedAt time.Time
}

// Available: pedida y cargada con datos reales.
func (s Snapshot) Available(src Source) bool {
	return slices.Contains(s.Requested, src) && !slices.Contains(s.Failed, src)
}

func (s Snapshot) AnyFailed() bool {
	return len(s.Failed) > 0
}

type outcome struct {
	users   []users.User
	plans   []plans.MealPlan
	recipes []recipes.Recipe
	failed  bool
	cause   error
}

// LoadAll lanza un List por fuente y espera a que todas terminen. El fallo de
// una fuente queda en su outcome; el único error del grupo es el del contexto
// del caller. El grupo no tiene contexto propio: nada cancela a las hermanas.
func (e *Engine) LoadAll(ctx context.Context, sources ...Source) (Snapshot, error) {
	if len(sources) == 0 {
		sources = AllSources
	}
	sources = dedupe(sources)

	results := make([]outcome, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			results[i] = e.load(ctx, src)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Requested: sources,
		Failed:    []Source{},
		LoadedAt:  e.now(),
	}
	for i, src := range sources {
		res := results[i]
		if res.failed {
			snap.Failed = append(snap.Failed, src)
			e.log.Warn("dashboard source failed", map[string]any{"source": string(src), "error": res.cause})
			if e.rec != nil {
				e.rec.SourceFailed(string(src))
			}
		}
		switch src {
		case SourceUsers:
			snap.Users = res.users
		case SourcePlans:
			snap.Plans = res.plans
		case SourceRecipes:
			snap.Recipes = res.recipes
		}
	}
	return snap, nil
}

func (e *Engine) load(ctx context.Context, src Source) (out outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = outcome{failed: true, cause: fmt.Errorf("panic loading %s: %v", src, p)}
		}
	}()

	switch src {
	case SourceUsers:
		if e.users == nil {
			return outcome{failed: true, cause: ErrSourceNotConfigured}
		}
		out.users, out.failed, out.cause = settle(e.users.List(ctx, users.ListFilter{Role: users.RolePatient}))
	case SourcePlans:
		if e.plans == nil {
			return outcome{failed: true, cause: ErrSourceNotConfigured}
		}
		out.plans, out.failed, out.cause = settle(e.plans.List(ctx, plans.ListFilter{}))
	case SourceRecipes:
		if e.recipes == nil {
			return outcome{failed: true, cause: ErrSourceNotConfigured}
		}
		out.recipes, out.failed, out.cause = settle(e.recipes.List(ctx, recipes.ListFilter{}))
	default:
		return outcome{failed: true, cause: ErrUnknownSource}
	}
	return out
}

// settle: fallback o error cuentan como fuente fallida.
func settle[T any](l upstream.Listing[T], err error) ([]T, bool, error) {
	if err != nil {
		return nil, true, err
	}
	if l.FromFallback() {
		return l.Items, true, l.Cause
	}
	return l.Items, false, nil
}

func dedupe(in []Source) []Source {
	out := make([]Source, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
