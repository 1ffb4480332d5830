// Package snbt converts JSON-like data to NBT and prints it as SNBT in the
// layout FTB Quests language files use:
//
//	{
//	    quest.1A2B.title:"Getting Started"
//	    quest.1A2B.quest_desc:[
//	        "First line"
//	        "Second line"
//	    ]
//	}
//
// Every primitive is printed inside double quotes, Int included. Keys are
// printed bare.
package snbt

import (
	"errors"
	"fmt"
	"math"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Tag identifies the NBT type of a Value.
type Tag int

const (
	TagString Tag = iota + 1
	TagInt
	TagList
	TagCompound
)

func (t Tag) String() string {
	switch t {
	case TagString:
		return "String"
	case TagInt:
		return "Int"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Value is one of String, Int, List or Compound.
type Value interface {
	Tag() Tag
}

// String is an NBT string.
type String string

// Int is an NBT 32-bit integer.
type Int int32

// List is a homogeneous NBT list; every item has tag Elem.
type List struct {
	Elem  Tag
	Items []Value
}

// Field is one named entry of a Compound.
type Field struct {
	Name  string
	Value Value
}

// Compound is an ordered NBT compound.
type Compound []Field

func (String) Tag() Tag   { return TagString }
func (Int) Tag() Tag      { return TagInt }
func (List) Tag() Tag     { return TagList }
func (Compound) Tag() Tag { return TagCompound }

var (
	// ErrUnsupportedType is matched by every *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported data type")
	// ErrMixedList is returned when list items convert to different tags.
	ErrMixedList = errors.New("list items have mixed tags")
	// ErrIntRange is returned for integers outside the NBT Int range.
	ErrIntRange = errors.New("integer out of NBT Int range")
)

// UnsupportedTypeError reports a value FromValue cannot represent.
type UnsupportedTypeError struct {
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported data type: %T", e.Value)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// FromValue converts JSON-like data to NBT. Ordered maps become compounds
// in their own order, plain maps in sorted key order; slices become lists;
// strings and integers become String and Int. Floats, booleans, nil and
// anything else fail with *UnsupportedTypeError.
func FromValue(v any) (Value, error) {
	switch x := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		c := make(Compound, 0, x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			item, err := FromValue(p.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Key, err)
			}
			c = append(c, Field{Name: p.Key, Value: item})
		}
		return c, nil
	case *orderedmap.OrderedMap[string, string]:
		c := make(Compound, 0, x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			c = append(c, Field{Name: p.Key, Value: String(p.Value)})
		}
		return c, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := make(Compound, 0, len(x))
		for _, k := range keys {
			item, err := FromValue(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			c = append(c, Field{Name: k, Value: item})
		}
		return c, nil
	case []any:
		return listOf(len(x), func(i int) any { return x[i] })
	case []string:
		return listOf(len(x), func(i int) any { return x[i] })
	case string:
		return String(x), nil
	case int:
		return intValue(int64(x))
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return intValue(x)
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return intValue(int64(x))
	}
	return nil, &UnsupportedTypeError{Value: v}
}

func intValue(n int64) (Value, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", ErrIntRange, n)
	}
	return Int(n), nil
}

// listOf converts n items. The element tag is taken from the first item;
// an empty list is a String list.
func listOf(n int, at func(int) any) (Value, error) {
	l := List{Elem: TagString, Items: make([]Value, 0, n)}
	for i := 0; i < n; i++ {
		item, err := FromValue(at(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if i == 0 {
			l.Elem = item.Tag()
		} else if item.Tag() != l.Elem {
			return nil, fmt.Errorf("[%d]: %w: %s in %s list", i, ErrMixedList, item.Tag(), l.Elem)
		}
		l.Items = append(l.Items, item)
	}
	return l, nil
}
