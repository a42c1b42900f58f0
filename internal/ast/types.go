// Package ast is the shared data model produced by the parser and walked
// (read-only, save for the expr_type annotation slots) by the analyzer:
// a tagged hierarchy of types, expressions, statements, declarations and
// program units. Every node carries the source offset of its first token.
package ast

import "fmt"

// Type is the recursive type variant: Base, Ptr, or Table.
type Type interface {
	isType()
	String() string
}

// Built-in base type names.
const (
	Entier    = "entier"
	Reel      = "réel"
	Booleen   = "booléen"
	Caractere = "caractère"
)

// BaseType names either a built-in base type or a user-defined record
// (article) type.
type BaseType struct {
	Name string
}

func (BaseType) isType() {}
func (t BaseType) String() string { return t.Name }

// PtrType is a pointer to another type.
type PtrType struct {
	Inner Type
}

func (PtrType) isType() {}
func (t PtrType) String() string { return "pointeur sur " + t.Inner.String() }

// Range is one dimension of a Table type: Start..End. EndSet is false for
// an unsized dimension (legal only on sub-algorithm parameters).
type Range struct {
	Start  int
	End    int
	EndSet bool
}

func (r Range) String() string {
	if !r.EndSet {
		return fmt.Sprintf("%d..", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// TableType is an array over one or more integer ranges.
type TableType struct {
	Ranges []Range
	Inner  Type
}

func (TableType) isType() {}
func (t TableType) String() string {
	s := "tableau "
	for i, r := range t.Ranges {
		if i > 0 {
			s += ", "
		}
		s += r.String()
	}
	return s + " de " + t.Inner.String()
}

// TypesEqual reports whether a and b are structurally equivalent per the
// data model's equivalence rule: Base names match; Ptr inners match; Table
// requires the same number of ranges with matching Start/End (both unset
// counting as matching) and matching inner type.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch av := a.(type) {
	case BaseType:
		bv, ok := b.(BaseType)
		return ok && av.Name == bv.Name
	case PtrType:
		bv, ok := b.(PtrType)
		return ok && TypesEqual(av.Inner, bv.Inner)
	case TableType:
		bv, ok := b.(TableType)
		if !ok || len(av.Ranges) != len(bv.Ranges) {
			return false
		}
		for i := range av.Ranges {
			ra, rb := av.Ranges[i], bv.Ranges[i]
			if ra.Start != rb.Start {
				return false
			}
			if ra.EndSet != rb.EndSet {
				return false
			}
			if ra.EndSet && ra.End != rb.End {
				return false
			}
		}
		return TypesEqual(av.Inner, bv.Inner)
	default:
		return false
	}
}
