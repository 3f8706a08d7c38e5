package discovery

import (
	"fmt"
	"strconv"

	"github.com/Shopify/go-lua"

	"github.com/contentforge/contentforge/pkg/document"
)

// loadLuaDocument executes a Lua content-definition file and converts the
// table it returns into a document.
func loadLuaDocument(path string) (document.Document, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, fmt.Errorf("definition script must return a table")
	}

	v := luaToGo(state, -1)
	state.Pop(1)

	doc, ok := document.AsDocument(v)
	if !ok {
		return nil, fmt.Errorf("definition script must return a mapping, not a sequence")
	}
	return doc, nil
}

// luaToGo converts the Lua value at the given stack index into the nested
// map/slice/scalar representation documents use.
func luaToGo(state *lua.State, index int) interface{} {
	switch state.TypeOf(index) {
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return n
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	case lua.TypeTable:
		return luaTableToGo(state, index)
	default:
		return nil
	}
}

// luaTableToGo converts a Lua table: tables with a non-zero sequence length
// become slices, everything else becomes a mapping with stringified keys.
func luaTableToGo(state *lua.State, index int) interface{} {
	abs := state.AbsIndex(index)

	if length := state.RawLength(abs); length > 0 {
		seq := make([]interface{}, 0, length)
		for i := 1; i <= length; i++ {
			state.RawGetInt(abs, i)
			seq = append(seq, luaToGo(state, -1))
			state.Pop(1)
		}
		return seq
	}

	m := document.Document{}
	state.PushNil()
	for state.Next(abs) {
		// Copy the key before converting it; converting in place would
		// corrupt table traversal.
		state.PushValue(-2)
		var key string
		switch state.TypeOf(-1) {
		case lua.TypeString:
			key, _ = state.ToString(-1)
		case lua.TypeNumber:
			n, _ := state.ToNumber(-1)
			key = strconv.FormatFloat(n, 'g', -1, 64)
		default:
			key = ""
		}
		state.Pop(1)

		if key != "" {
			m[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return m
}
