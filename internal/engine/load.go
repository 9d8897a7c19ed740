// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Strata Contributors

package engine

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/stratamud/strata/internal/content"
	luamod "github.com/stratamud/strata/internal/content/lua"
	"github.com/stratamud/strata/internal/dispatch"
)

// Error codes for load failures that are not per-module authoring
// conflicts.
const (
	CodeContentRoot  = "CONTENT_ROOT"
	CodeIncompatible = "INCOMPATIBLE_MODULE"
	CodeDuplicate    = "DUPLICATE_MODULE"
)

// Option configures a Load call.
type Option func(*loader)

// WithEngineVersion overrides the engine version manifests are checked
// against. Intended for the validate CLI and for tests.
func WithEngineVersion(version string) Option {
	return func(l *loader) {
		l.version = version
	}
}

// WithModules adds Go-authored modules to the load. Each must declare a
// Path relative to the content root; tiers are resolved from it exactly
// as for discovered modules, so built-in base rules and scripted content
// share one precedence model.
func WithModules(modules ...*content.Module) Option {
	return func(l *loader) {
		l.extra = append(l.extra, modules...)
	}
}

type loader struct {
	root    string
	version string
	host    *luamod.Host
	extra   []*content.Module

	conflicts []error
}

// Load discovers and loads every content module below root and builds
// the frozen registry set. It returns either a fully-populated Engine or
// a *ConflictError carrying every authoring conflict found; it never
// returns a partially-usable registry.
func Load(ctx context.Context, root string, opts ...Option) (*Engine, error) {
	l := &loader{
		root:    root,
		version: Version,
		host:    luamod.NewHost(),
	}
	for _, opt := range opts {
		opt(l)
	}

	modules, err := l.collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(l.conflicts) > 0 {
		return nil, &ConflictError{Conflicts: l.conflicts}
	}

	content.SortModules(modules)
	eng := l.build(modules)
	if len(l.conflicts) > 0 {
		return nil, &ConflictError{Conflicts: l.conflicts}
	}

	slog.InfoContext(ctx, "content loaded",
		"root", root,
		"modules", len(modules),
		"verbs", len(eng.vocab.Verbs()),
	)
	return eng, nil
}

// collect discovers scripted modules under the root and merges in the
// Go-authored extras, resolving a tier for every module.
func (l *loader) collect(ctx context.Context) ([]*content.Module, error) {
	var modules []*content.Module

	discovered, err := l.discover(ctx)
	if err != nil {
		return nil, err
	}
	modules = append(modules, discovered...)

	for _, mod := range l.extra {
		tier, err := content.ResolveTier(mod.Path)
		if err != nil {
			l.conflicts = append(l.conflicts, oops.Code(CodeContentRoot).With("module", mod.Name).Wrap(err))
			continue
		}
		mod.Tier = tier
		if err := mod.Validate(); err != nil {
			l.conflicts = append(l.conflicts, oops.Code(CodeContentRoot).Wrap(err))
			continue
		}
		modules = append(modules, mod)
	}

	byName := make(map[string]*content.Module, len(modules))
	valid := modules[:0]
	for _, mod := range modules {
		if prev, ok := byName[mod.Name]; ok {
			l.conflicts = append(l.conflicts, oops.Code(CodeDuplicate).
				With("module", mod.Name).
				With("path_a", prev.Path).
				With("path_b", mod.Path).
				Errorf("duplicate module name %q at %s and %s", mod.Name, prev.Path, mod.Path))
			continue
		}
		byName[mod.Name] = mod
		valid = append(valid, mod)
	}
	return valid, nil
}

// discover walks the content root for module.yaml manifests and loads
// each module's entry script.
func (l *loader) discover(ctx context.Context) ([]*content.Module, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, oops.Code(CodeContentRoot).With("root", l.root).Hint("content root must exist").Wrap(err)
	}
	if !info.IsDir() {
		return nil, oops.Code(CodeContentRoot).With("root", l.root).New("content root is not a directory")
	}

	var modules []*content.Module
	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != content.ManifestFile {
			return nil
		}

		dir := filepath.Dir(path)
		mod, err := l.loadDir(ctx, dir)
		if err != nil {
			l.conflicts = append(l.conflicts, err)
			return nil
		}
		if mod != nil {
			modules = append(modules, mod)
		}
		return nil
	})
	if err != nil {
		return nil, oops.Code(CodeContentRoot).With("root", l.root).Wrap(err)
	}
	return modules, nil
}

// loadDir loads one module directory: manifest, compatibility gate,
// entry script, tier.
func (l *loader) loadDir(ctx context.Context, dir string) (*content.Module, error) {
	data, err := os.ReadFile(filepath.Clean(filepath.Join(dir, content.ManifestFile)))
	if err != nil {
		return nil, oops.Code(CodeContentRoot).With("dir", dir).Wrap(err)
	}

	manifest, err := content.ParseManifest(data)
	if err != nil {
		return nil, oops.Code(CodeContentRoot).With("dir", dir).Hint("invalid module.yaml").Wrap(err)
	}

	compatible, err := manifest.CompatibleWith(l.version)
	if err != nil {
		return nil, oops.Code(CodeIncompatible).With("module", manifest.Name).Wrap(err)
	}
	if !compatible {
		return nil, oops.Code(CodeIncompatible).
			With("module", manifest.Name).
			With("constraint", manifest.Engine).
			With("engine_version", l.version).
			Errorf("module %s requires engine %q, running %s", manifest.Name, manifest.Engine, l.version)
	}

	rel, err := filepath.Rel(l.root, dir)
	if err != nil {
		return nil, oops.Code(CodeContentRoot).With("dir", dir).Wrap(err)
	}

	mod, err := l.host.LoadModule(ctx, manifest, dir)
	if err != nil {
		return nil, err
	}
	mod.Path = filepath.ToSlash(rel)

	tier, err := content.ResolveTier(mod.Path)
	if err != nil {
		return nil, oops.Code(CodeContentRoot).With("module", mod.Name).Wrap(err)
	}
	mod.Tier = tier

	if err := mod.Validate(); err != nil {
		return nil, oops.Code(CodeContentRoot).Wrap(err)
	}

	slog.DebugContext(ctx, "module discovered",
		"module", mod.Name,
		"path", mod.Path,
		"tier", mod.Tier,
	)
	return mod, nil
}

// build registers every module contribution into fresh registries,
// collecting all conflicts, then freezes them.
func (l *loader) build(modules []*content.Module) *Engine {
	vocab := dispatch.NewVocabulary()
	events := dispatch.NewEvents()
	handlers := dispatch.NewHandlers()
	byName := make(map[string]*content.Module, len(modules))

	for _, mod := range modules {
		byName[mod.Name] = mod
		l.conflicts = append(l.conflicts, vocab.Register(mod.Name, mod.Tier, mod.Vocabulary)...)

		for verb, entry := range mod.Vocabulary.Verbs {
			if entry.Event == "" {
				continue
			}
			if err := events.Register(verb, mod.Tier, entry.Event, mod.Name); err != nil {
				l.conflicts = append(l.conflicts, err)
			}
		}
		for verb, fn := range mod.Handlers {
			if err := handlers.Register(verb, mod.Tier, mod.Name, fn); err != nil {
				l.conflicts = append(l.conflicts, err)
			}
		}
	}

	vocab.Freeze()
	events.Freeze()
	handlers.Freeze()

	return &Engine{
		vocab:    vocab,
		events:   events,
		handlers: handlers,
		modules:  byName,
		ordered:  modules,
	}
}
