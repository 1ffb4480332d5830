package snbt

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// indentSize is the number of spaces per nesting level.
const indentSize = 4

// Format pretty-prints v at nesting level (0 for a top-level value). Nested
// lines are indented by four spaces per level; closing brackets line up
// with the line that opened them. There is no trailing newline.
func Format(v Value, level int) string {
	indent := strings.Repeat(" ", level*indentSize)
	inner := indent + strings.Repeat(" ", indentSize)

	switch x := v.(type) {
	case Compound:
		lines := make([]string, 0, len(x)+2)
		lines = append(lines, "{")
		for _, f := range x {
			lines = append(lines, inner+f.Name+":"+Format(f.Value, level+1))
		}
		lines = append(lines, indent+"}")
		return strings.Join(lines, "\n")
	case List:
		lines := make([]string, 0, len(x.Items)+2)
		lines = append(lines, "[")
		for _, item := range x.Items {
			lines = append(lines, inner+Format(item, level+1))
		}
		lines = append(lines, indent+"]")
		return strings.Join(lines, "\n")
	case String:
		return `"` + string(x) + `"`
	case Int:
		return `"` + strconv.FormatInt(int64(x), 10) + `"`
	}
	return ""
}

// EscapeQuotes returns a copy of v with every double quote in string
// values prefixed by a backslash. Map keys and non-string values are left
// as they are.
func EscapeQuotes(v any) any {
	switch x := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		out := orderedmap.New[string, any](x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, EscapeQuotes(p.Value))
		}
		return out
	case *orderedmap.OrderedMap[string, string]:
		out := orderedmap.New[string, string](x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, escape(p.Value))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = EscapeQuotes(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = EscapeQuotes(item)
		}
		return out
	case []string:
		out := make([]string, len(x))
		for i, item := range x {
			out[i] = escape(item)
		}
		return out
	case string:
		return escape(x)
	}
	return v
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Marshal escapes quotes in v, converts it to NBT and formats it.
func Marshal(v any) ([]byte, error) {
	nbt, err := FromValue(EscapeQuotes(v))
	if err != nil {
		return nil, err
	}
	return []byte(Format(nbt, 0)), nil
}
