package syntax

import "strings"

// TypeRef is a structural reference to a possibly namespaced, possibly
// generic type, e.g. io::Buffer<int>. TypeRefs are values; copy freely.
type TypeRef struct {
	Namespaces []string  // qualifying path, outermost first
	Name       string    // type name
	Args       []TypeRef // generic arguments (nil if none)
}

// NewTypeRef returns an unqualified, non-generic TypeRef.
func NewTypeRef(name string) TypeRef {
	return TypeRef{Name: name}
}

// Equal reports whether t and u have the same namespace path, the same
// name and pairwise-equal generic arguments.
func (t TypeRef) Equal(u TypeRef) bool {
	if t.Name != u.Name || len(t.Namespaces) != len(u.Namespaces) || len(t.Args) != len(u.Args) {
		return false
	}
	for i := range t.Namespaces {
		if t.Namespaces[i] != u.Namespaces[i] {
			return false
		}
	}
	for i := range t.Args {
		if !t.Args[i].Equal(u.Args[i]) {
			return false
		}
	}
	return true
}

// IsGeneric reports whether t carries generic arguments.
func (t TypeRef) IsGeneric() bool { return len(t.Args) > 0 }

// String returns the source form of t, e.g. "a::b::Map<int, string>".
func (t TypeRef) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t TypeRef) writeTo(b *strings.Builder) {
	for _, ns := range t.Namespaces {
		b.WriteString(ns)
		b.WriteString("::")
	}
	b.WriteString(t.Name)
	if len(t.Args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.writeTo(b)
	}
	b.WriteByte('>')
}

// Builtin type predicates. A builtin is unqualified and not generic.

func (t TypeRef) isBuiltin(name string) bool {
	return t.Name == name && len(t.Namespaces) == 0 && len(t.Args) == 0
}

func (t TypeRef) IsBool() bool   { return t.isBuiltin("bool") }
func (t TypeRef) IsChar() bool   { return t.isBuiltin("char") }
func (t TypeRef) IsShort() bool  { return t.isBuiltin("short") }
func (t TypeRef) IsInt() bool    { return t.isBuiltin("int") }
func (t TypeRef) IsLong() bool   { return t.isBuiltin("long") }
func (t TypeRef) IsFloat() bool  { return t.isBuiltin("float") }
func (t TypeRef) IsDouble() bool { return t.isBuiltin("double") }

// EqualSignatures reports whether two ordered type lists are pairwise equal.
func EqualSignatures(a, b []TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
