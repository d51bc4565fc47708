package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/stagehand/actor"
)

type engineFunc func(args ...tengo.Object) (tengo.Object, error)

// buildEngine exposes the level API to scripts. Actors are handed out as
// integer ids. Every function becomes a no-op once the level is torn down.
func buildEngine(rt *Runtime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	add := func(name string, fn engineFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if rt.level.World().Closed() {
				return tengo.UndefinedValue, nil
			}
			return fn(args...)
		}}
	}

	for _, name := range []string{"hero", "enemy", "obstacle", "goodie", "destination"} {
		role, _ := actor.ParseRole(name)
		add(name, rt.spawner(role))
	}

	add("position", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 1)
		if err != nil || a == nil {
			return tengo.UndefinedValue, err
		}
		return pair(a.Position()), nil
	})
	add("set_position", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 3)
		if err != nil || a == nil {
			return tengo.FalseValue, err
		}
		a.SetPosition(toFloat(args[1]), toFloat(args[2]))
		return tengo.TrueValue, nil
	})
	add("velocity", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 1)
		if err != nil || a == nil {
			return tengo.UndefinedValue, err
		}
		if len(args) >= 3 {
			a.UpdateVelocity(toFloat(args[1]), toFloat(args[2]))
		}
		return pair(a.Velocity()), nil
	})
	add("enabled", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 1)
		if err != nil {
			return tengo.FalseValue, err
		}
		return boolObject(a.Enabled()), nil
	})
	add("remove", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 1)
		if err != nil || a == nil {
			return tengo.FalseValue, err
		}
		quiet := len(args) > 1 && toBool(args[1])
		if e := a.Enemy(); e != nil {
			e.Defeat(!quiet)
			return tengo.TrueValue, nil
		}
		a.Remove(quiet)
		return tengo.TrueValue, nil
	})
	add("route", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 3)
		if err != nil || a == nil {
			return tengo.FalseValue, err
		}
		points, _ := objectToAny(args[1]).([]any)
		var r actor.Route
		for i, p := range points {
			xy, _ := p.([]any)
			if len(xy) < 2 {
				return tengo.FalseValue, fmt.Errorf("route point %d: want [x, y]", i)
			}
			x, y := number(xy[0]), number(xy[1])
			if i == 0 {
				r = actor.NewRoute(x, y)
				continue
			}
			r = r.To(x, y)
		}
		loop := len(args) > 3 && toBool(args[3])
		a.SetRoute(r, toFloat(args[2]), loop)
		return tengo.TrueValue, nil
	})
	add("chase", func(args ...tengo.Object) (tengo.Object, error) {
		a, err := rt.actorArg(args, 1)
		if err != nil || a == nil {
			return tengo.FalseValue, err
		}
		rt.level.ChaseActor(a)
		return tengo.TrueValue, nil
	})
	add("zoom", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if len(args) > 1 {
			rt.level.ZoomTo(toFloat(args[0]), toFloat(args[1]))
		} else {
			rt.level.SetZoom(toFloat(args[0]))
		}
		return tengo.TrueValue, nil
	})
	add("gravity", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetGravity(toFloat(args[0]), toFloat(args[1]))
		return tengo.TrueValue, nil
	})

	add("victory_destination", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetVictoryDestination(toInt(args[0]))
		return tengo.TrueValue, nil
	})
	add("victory_goodies", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetVictoryGoodieCount(toScore(args[0]))
		return tengo.TrueValue, nil
	})
	add("victory_enemies", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetVictoryEnemyCount(toInt(args[0]))
		return tengo.TrueValue, nil
	})
	add("lose_countdown", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetLoseCountdown(toFloat(args[0]))
		return tengo.TrueValue, nil
	})
	add("win_countdown", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetWinCountdown(toFloat(args[0]))
		return tengo.TrueValue, nil
	})
	add("win_text", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetWinText(objectAsString(args[0]))
		return tengo.TrueValue, nil
	})
	add("lose_text", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetLoseText(objectAsString(args[0]))
		return tengo.TrueValue, nil
	})
	add("end_level", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.EndLevel(toBool(args[0]))
		return tengo.TrueValue, nil
	})

	add("text", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.AddText(toFloat(args[0]), toFloat(args[1]), toFloat(args[2]), nil, objectAsString(args[3]))
		return tengo.TrueValue, nil
	})
	add("music", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.SetMusic(objectAsString(args[0]))
		return tengo.TrueValue, nil
	})
	add("sound", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.level.PlaySound(objectAsString(args[0]))
		return tengo.TrueValue, nil
	})

	add("goodies", func(args ...tengo.Object) (tengo.Object, error) {
		counts := rt.level.Session().GoodieCounts()
		out := make([]tengo.Object, len(counts))
		for i, c := range counts {
			out[i] = &tengo.Int{Value: int64(c)}
		}
		return &tengo.Array{Value: out}, nil
	})
	add("elapsed", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: rt.level.Session().Elapsed()}, nil
	})
	add("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = objectAsString(a)
		}
		rt.logger.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

// spawner returns the engine function that creates an actor of role from
// an options map.
func (rt *Runtime) spawner(role actor.Role) engineFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		spec, err := actor.DecodeSpec(objectToAny(args[0]))
		if err != nil {
			return nil, fmt.Errorf("%s options: %w", role, err)
		}
		a, err := rt.level.Stage().Spawn(role, spec)
		if err != nil {
			return nil, err
		}
		return &tengo.Int{Value: int64(a.ID())}, nil
	}
}

// actorArg resolves args[0] to an actor and checks that at least n
// arguments were passed. Unknown ids yield a nil actor.
func (rt *Runtime) actorArg(args []tengo.Object, n int) (*actor.Actor, error) {
	if len(args) < n {
		return nil, tengo.ErrWrongNumArguments
	}
	id, ok := tengo.ToInt64(args[0])
	if !ok || id <= 0 {
		return nil, nil
	}
	a, _ := rt.level.Stage().Registry().Lookup(actor.ID(id))
	return a, nil
}

func number(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
