// Package syntax implements lexical and syntactic analysis for the crosslang language.
package syntax

import "fmt"

// Kind represents the kind of a lexical token.
type Kind uint8

const (
	Identifier         Kind = iota // foo, _bar, module
	Number                         // 12, 0x1F, 3.14
	Operator                       // +, >>=, ::, (, ;
	SingleQuotedString             // 'text'
	DoubleQuotedString             // "text"

	kindCount
)

// kindNames maps kinds to their string representation.
var kindNames = [...]string{
	Identifier:         "IDENT",
	Number:             "NUMBER",
	Operator:           "OP",
	SingleQuotedString: "SQSTRING",
	DoubleQuotedString: "DQSTRING",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsString reports whether k is one of the quoted string kinds.
func (k Kind) IsString() bool {
	return k == SingleQuotedString || k == DoubleQuotedString
}

// Token is a single lexical token. Text is the exact source text of the
// token (quotes included for strings) and Offset is the byte offset of its
// first character.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Kind, t.Text, t.Offset)
}

// multicharOperators lists every operator spelled with more than one
// character. An operator token keeps growing only while its text is a
// prefix of one of these.
var multicharOperators = [...]string{
	">>", "<<", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", ">>=", "<<=",
	"&&", "||", "^^", "==", "!=", ">=", "<=", "++", "--", "->", "::",
}

// isMulticharOperator reports whether s is exactly a multichar operator.
func isMulticharOperator(s string) bool {
	for _, op := range multicharOperators {
		if op == s {
			return true
		}
	}
	return false
}

// isMulticharPrefix reports whether s is a prefix of some multichar operator.
func isMulticharPrefix(s string) bool {
	for _, op := range multicharOperators {
		if len(s) <= len(op) && op[:len(s)] == s {
			return true
		}
	}
	return false
}

// Operator sets used by the parser.
var (
	leftUnaryOps  = setOf("!", "~", "+", "-", "++", "--")
	rightUnaryOps = setOf("++", "--")
	binaryOps     = setOf(
		"+", "-", "*", "/", "%", "&", "|", "^", ">>", "<<",
		"&&", "||", "^^", "==", "!=", "<", "<=", ">", ">=",
	)
	assignOps = setOf("=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", ">>=", "<<=")
)

func setOf(ops ...string) map[string]bool {
	m := make(map[string]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// IsBinaryOp reports whether op is a binary (middle) operator.
func IsBinaryOp(op string) bool { return binaryOps[op] }

// IsAssignOp reports whether op is an assignment operator.
func IsAssignOp(op string) bool { return assignOps[op] }

// Declaration and statement keywords. These are scanned as identifiers and
// recognized by the parser by their text.
const (
	kwModule      = "module"
	kwModuleShort = "md"
	kwField       = "field"
	kwFieldShort  = "fd"
	kwFunc        = "function"
	kwFuncShort   = "fn"
	kwIf          = "if"
	kwThen        = "then"
	kwElse        = "else"
	kwWhile       = "while"
	kwDo          = "do"
	kwFor         = "for"
	kwForever     = "forever"
	kwRepeat      = "repeat"
	kwReturn      = "return"
	kwTrue        = "true"
	kwFalse       = "false"
)
