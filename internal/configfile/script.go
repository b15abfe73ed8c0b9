package configfile

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ScriptEvaluator evaluates a script config file and returns the
// configuration it exports. Implementations must not retain state
// between calls; every load evaluates from scratch.
type ScriptEvaluator interface {
	Evaluate(path string, src []byte) (map[string]any, error)
}

// LuaEvaluator evaluates script configs with an embedded Lua interpreter.
// The script is run as a chunk that must return a table, e.g.
//
//	return {
//	    root = true,
//	    rules = { ["no-undef"] = "error" },
//	}
//
// A fresh interpreter state is created per evaluation and closed before
// returning, so scripts cannot observe or mutate earlier loads.
type LuaEvaluator struct{}

// NewLuaEvaluator creates a Lua script evaluator.
func NewLuaEvaluator() *LuaEvaluator {
	return &LuaEvaluator{}
}

// Evaluate runs the script and converts its returned table to a map.
func (e *LuaEvaluator) Evaluate(path string, src []byte) (map[string]any, error) {
	L := lua.NewState()
	defer L.Close()

	fn, err := L.LoadString(string(src))
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}

	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: script must return a table, got %s", path, ret.Type())
	}

	value := tableToGo(table, make(map[*lua.LTable]bool))
	config, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: script must return a table with string keys", path)
	}

	return config, nil
}

// luaToGo converts a Lua value to a Go value, tracking visited tables to
// break circular references.
func luaToGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a Lua table to either a Go slice (sequential integer
// keys starting at 1) or a string-keyed map.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			n := int(kn)
			if float64(n) == float64(kn) && n > 0 {
				if n > maxN {
					maxN = n
				}
				return
			}
		}
		isArray = false
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = luaToGo(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		default:
			key = k.String()
		}
		m[key] = luaToGo(v, visited)
	})
	return m
}
