package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// Tutorials is the tutorial repository. Content is resolved per section as a
// whole document: the requested language's tree or the English one.
type Tutorials struct {
	store  store.Tutorials
	logger *slog.Logger
}

// NewTutorials returns a tutorial repository over s; nil means not configured.
func NewTutorials(s store.Tutorials, opts ...Option) *Tutorials {
	o := buildOptions(opts)
	return &Tutorials{store: s, logger: o.logger}
}

// All returns the active sections ordered by order_index. Sections with an
// unknown key or undecodable content are skipped and logged.
func (r *Tutorials) All(ctx context.Context, l lang.Code) ([]tutorial.View, error) {
	if r.store == nil {
		r.logger.Warn("store not configured, returning empty result", "op", "all tutorials")
		return []tutorial.View{}, nil
	}
	sections, err := r.store.ListSections(ctx, true)
	if err != nil {
		return nil, wrap("all tutorials", err)
	}

	views := make([]tutorial.View, 0, len(sections))
	for _, s := range sections {
		if _, err := tutorial.ParseKey(string(s.Key)); err != nil {
			r.logger.Warn("skipping tutorial section", "section_key", s.Key, "error", err)
			continue
		}
		v, err := tutorial.Resolve(s, l)
		if err != nil {
			r.logger.Warn("skipping tutorial section", "section_key", s.Key, "error", err)
			continue
		}
		views = append(views, v)
	}
	return views, nil
}

// Section returns one active section resolved for l.
func (r *Tutorials) Section(ctx context.Context, key string, l lang.Code) (tutorial.View, error) {
	k, err := tutorial.ParseKey(key)
	if err != nil {
		return tutorial.View{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if r.store == nil {
		return tutorial.View{}, ErrNotConfigured
	}
	s, err := r.store.GetSection(ctx, k)
	if err != nil {
		return tutorial.View{}, wrap("tutorial "+key, err)
	}
	if !s.Active {
		return tutorial.View{}, fmt.Errorf("tutorial %s: %w", key, ErrNotFound)
	}
	v, err := tutorial.Resolve(s, l)
	if err != nil {
		return tutorial.View{}, fmt.Errorf("tutorial %s: %w: %v", key, ErrValidation, err)
	}
	return v, nil
}

// Raw returns every stored section, active or not.
func (r *Tutorials) Raw(ctx context.Context) ([]tutorial.Section, error) {
	if r.store == nil {
		return nil, ErrNotConfigured
	}
	sections, err := r.store.ListSections(ctx, false)
	return sections, wrap("raw tutorials", err)
}
