// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package shell

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/ayurchenko/go-ns-kernel/internal/logger"
)

// GoEngine is an [Engine] backed by the yaegi Go interpreter.
//
// Pushed variables live in a side table rather than as interpreter globals;
// interpreted code reaches them through the pre-imported registry package:
//
//	registry.Get("laser")  // value pushed under "laser", or nil
//	registry.Names()       // all currently pushed names
//
// The side table keeps removal exact: deleting a name never clobbers a
// binding the user created themselves.
type GoEngine struct {
	interp *interp.Interpreter
	log    *logger.Logger

	mu sync.RWMutex
	ns map[string]any
}

// NewGoEngine builds an interpreter with the standard library and the
// registry accessor package loaded.
func NewGoEngine(log *logger.Logger) (*GoEngine, error) {
	e := &GoEngine{
		interp: interp.New(interp.Options{}),
		log:    log.GetChildLogger(),
		ns:     make(map[string]any),
	}

	if err := e.interp.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load stdlib symbols: %w", err)
	}

	err := e.interp.Use(interp.Exports{
		"registry/registry": {
			"Get":   reflect.ValueOf(e.lookup),
			"Names": reflect.ValueOf(e.names),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load registry symbols: %w", err)
	}

	if _, err := e.interp.Eval(`import "registry"`); err != nil {
		return nil, fmt.Errorf("import registry package: %w", err)
	}

	return e, nil
}

func (e *GoEngine) lookup(name string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ns[name]
}

func (e *GoEngine) names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.ns))
	for name := range e.ns {
		names = append(names, name)
	}
	return names
}

// Push binds vars into the engine's namespace table, overwriting existing
// entries under the same names.
func (e *GoEngine) Push(vars map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for name, value := range vars {
		e.ns[name] = value
	}
}

// Remove deletes name from the namespace table. Absent names are a no-op.
func (e *GoEngine) Remove(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.ns, name)
}

// Execute evaluates code in the interpreter and returns the resulting
// value, or nil when the evaluation produces none.
func (e *GoEngine) Execute(ctx context.Context, code string) (any, error) {
	v, err := e.interp.EvalWithContext(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// Shutdown releases the engine. The interpreter holds no external
// resources, so this only logs intent.
func (e *GoEngine) Shutdown(restart bool) error {
	e.log.Info().Bool("restart", restart).Msg("execution engine shut down")
	return nil
}
