// Package script runs tengo level scripts against a level.
//
// A script declares up to two functions at top level:
//
//	setup := func(engine, state) { ... }
//	update := func(engine, state, dt) { ... }
//
// setup runs once when the level starts and update runs after every world
// step. state is a map kept between calls.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/level"
	"github.com/milk9111/stagehand/scene"
)

// ErrNoScript is returned for empty sources and for scripts that declare
// neither setup nor update.
var ErrNoScript = errors.New("no script")

type Runtime struct {
	name     string
	level    *level.Level
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	update   *scene.Event
	logger   *log.Logger
}

type entryPoints struct {
	setup  bool
	update bool
}

// Check compiles src without running it against a level.
func Check(name string, src []byte) error {
	_, _, err := compile(name, src)
	return err
}

// Attach compiles src, runs its setup against l and schedules its update
// on l's world scene.
func Attach(l *level.Level, name string, src []byte) (*Runtime, error) {
	compiled, entries, err := compile(name, src)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		name:     name,
		level:    l,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		logger:   common.Logger("script").With("script", name),
	}
	rt.engine = buildEngine(rt)

	if entries.setup {
		if err := rt.run("setup", 0); err != nil {
			return nil, fmt.Errorf("script %s setup: %w", name, err)
		}
	}
	if entries.update {
		rt.update = l.World().Repeat(scene.ActionFunc(rt.tick))
	}
	return rt, nil
}

// Stop cancels the per-step update.
func (rt *Runtime) Stop() {
	if rt != nil && rt.update != nil {
		rt.update.Cancel()
	}
}

// State returns the map shared by setup and update.
func (rt *Runtime) State() map[string]any {
	out, _ := objectToAny(rt.state).(map[string]any)
	return out
}

func (rt *Runtime) tick() {
	if err := rt.run("update", common.FixedStep); err != nil {
		rt.logger.Error("update failed, script stopped", "err", err)
		rt.Stop()
	}
}

func (rt *Runtime) run(phase string, dt float64) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", rt.engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__dt", dt); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// compile probes src for its entry points, then compiles it together with
// a dispatcher that calls the one selected by __phase.
func compile(name string, src []byte) (*tengo.Compiled, entryPoints, error) {
	var entries entryPoints
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, entries, fmt.Errorf("%w: %s is empty", ErrNoScript, name)
	}

	probe := tengo.NewScript(src)
	probe.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	probed, err := probe.Compile()
	if err != nil {
		return nil, entries, fmt.Errorf("compile %s: %w", name, err)
	}
	if err := probed.Run(); err != nil {
		return nil, entries, fmt.Errorf("run %s: %w", name, err)
	}
	entries.setup = probed.IsDefined("setup")
	entries.update = probed.IsDefined("update")
	if !entries.setup && !entries.update {
		return nil, entries, fmt.Errorf("%w: %s declares neither setup nor update", ErrNoScript, name)
	}

	full := string(src) + "\n" + dispatchSource(entries)
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__dt", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, entries, fmt.Errorf("compile %s: %w", name, err)
	}
	return compiled, entries, nil
}

func dispatchSource(e entryPoints) string {
	var b strings.Builder
	if e.setup {
		b.WriteString("if __phase == \"setup\" {\n\tsetup(__engine, __state)\n}\n")
	}
	if e.update {
		b.WriteString("if __phase == \"update\" {\n\tupdate(__engine, __state, __dt)\n}\n")
	}
	return b.String()
}
