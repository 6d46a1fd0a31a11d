// Package index builds the hierarchical symbol table of a compilation:
// modules containing fields, functions and nested modules.
package index

import (
	"fmt"

	"github.com/you-not-fish/crosslang/internal/syntax"
)

// IndexError reports a duplicate declaration.
type IndexError struct {
	Offset int // byte offset of the offending declaration, or -1 if unknown
	Msg    string
}

func (e *IndexError) Error() string {
	return e.Msg
}

// FieldIndex records a field declaration. It is immutable once created.
type FieldIndex struct {
	global bool
	name   string
	typ    syntax.TypeRef
}

// NewField creates a field record.
func NewField(global bool, name string, typ syntax.TypeRef) *FieldIndex {
	return &FieldIndex{global: global, name: name, typ: typ}
}

// Global reports whether the field carries the global modifier.
func (f *FieldIndex) Global() bool { return f.global }

// Name returns the field name.
func (f *FieldIndex) Name() string { return f.name }

// Type returns the declared field type.
func (f *FieldIndex) Type() syntax.TypeRef { return f.typ }

func (f *FieldIndex) String() string {
	return f.typ.String() + " " + f.name
}

// FunctionIndex records a function declaration. It is immutable once
// created.
type FunctionIndex struct {
	global bool
	name   string
	result syntax.TypeRef
	params []syntax.TypeRef
}

// NewFunction creates a function record. The parameter slice is copied.
func NewFunction(global bool, name string, result syntax.TypeRef, params []syntax.TypeRef) *FunctionIndex {
	return &FunctionIndex{
		global: global,
		name:   name,
		result: result,
		params: append([]syntax.TypeRef(nil), params...),
	}
}

// Global reports whether the function carries the global modifier.
func (f *FunctionIndex) Global() bool { return f.global }

// Name returns the function name.
func (f *FunctionIndex) Name() string { return f.name }

// Result returns the declared return type.
func (f *FunctionIndex) Result() syntax.TypeRef { return f.result }

// Params returns the ordered parameter types. The result must not be
// modified.
func (f *FunctionIndex) Params() []syntax.TypeRef { return f.params }

// Signature returns the parameter list as written in index dumps,
// e.g. "(int, double)".
func (f *FunctionIndex) Signature() string {
	s := "("
	for i, p := range f.params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

func (f *FunctionIndex) String() string {
	return fmt.Sprintf("%s %s %s", f.result, f.name, f.Signature())
}

// ModuleIndex is a named or anonymous module scope. Members are kept in
// the order they were added.
type ModuleIndex struct {
	name      string
	named     bool
	modules   []*ModuleIndex
	fields    []*FieldIndex
	functions []*FunctionIndex
}

// NewModule creates an anonymous module. The root of a compilation is
// anonymous.
func NewModule() *ModuleIndex {
	return &ModuleIndex{}
}

// NewNamedModule creates a module with the given name.
func NewNamedModule(name string) *ModuleIndex {
	return &ModuleIndex{name: name, named: true}
}

// Name returns the module name, or "" for an anonymous module.
func (m *ModuleIndex) Name() string { return m.name }

// Named reports whether the module has a name.
func (m *ModuleIndex) Named() bool { return m.named }

// Modules returns the submodules. The result must not be modified.
func (m *ModuleIndex) Modules() []*ModuleIndex { return m.modules }

// Fields returns the fields. The result must not be modified.
func (m *ModuleIndex) Fields() []*FieldIndex { return m.fields }

// Functions returns the functions, overloads included. The result must
// not be modified.
func (m *ModuleIndex) Functions() []*FunctionIndex { return m.functions }

// AddField inserts f, rejecting a second field with the same name.
func (m *ModuleIndex) AddField(f *FieldIndex) error {
	for _, existing := range m.fields {
		if existing.name == f.name {
			return duplicate("field", f.name)
		}
	}
	m.fields = append(m.fields, f)
	return nil
}

// AddFunction inserts f. Functions may be overloaded; only a function with
// the same name and the same ordered parameter types is rejected. The
// return type is not part of the signature.
func (m *ModuleIndex) AddFunction(f *FunctionIndex) error {
	for _, existing := range m.functions {
		if existing.name == f.name && syntax.EqualSignatures(existing.params, f.params) {
			return duplicate("function", f.name)
		}
	}
	m.functions = append(m.functions, f)
	return nil
}

// AddModule inserts sub. A named module collides only with another named
// module of the same name; anonymous modules never collide.
func (m *ModuleIndex) AddModule(sub *ModuleIndex) error {
	if sub.named {
		for _, existing := range m.modules {
			if existing.named && existing.name == sub.name {
				return duplicate("namespace", sub.name)
			}
		}
	}
	m.modules = append(m.modules, sub)
	return nil
}

func duplicate(what, name string) *IndexError {
	return &IndexError{Offset: -1, Msg: fmt.Sprintf("Duplicate %s `%s`", what, name)}
}

// Module returns the first named submodule called name, or nil.
func (m *ModuleIndex) Module(name string) *ModuleIndex {
	for _, sub := range m.modules {
		if sub.named && sub.name == name {
			return sub
		}
	}
	return nil
}

// Field returns the field called name, or nil.
func (m *ModuleIndex) Field(name string) *FieldIndex {
	for _, f := range m.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Overloads returns every function called name, in declaration order.
func (m *ModuleIndex) Overloads(name string) []*FunctionIndex {
	var fns []*FunctionIndex
	for _, f := range m.functions {
		if f.name == name {
			fns = append(fns, f)
		}
	}
	return fns
}

// Function returns the function called name with exactly the given
// parameter types, or nil.
func (m *ModuleIndex) Function(name string, params []syntax.TypeRef) *FunctionIndex {
	for _, f := range m.functions {
		if f.name == name && syntax.EqualSignatures(f.params, params) {
			return f
		}
	}
	return nil
}

// Lookup resolves a namespace path such as ["a", "b"] to a nested named
// module, or returns nil.
func (m *ModuleIndex) Lookup(path []string) *ModuleIndex {
	cur := m
	for _, name := range path {
		if cur = cur.Module(name); cur == nil {
			return nil
		}
	}
	return cur
}

// NumMembers returns the number of direct members of the module.
func (m *ModuleIndex) NumMembers() int {
	return len(m.modules) + len(m.fields) + len(m.functions)
}
