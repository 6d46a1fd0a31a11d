package syntax

import (
	"strings"
	"testing"
)

// tok is a compact token description used in expectations.
type tok struct {
	kind Kind
	text string
}

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, _, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return tokens
}

func checkTokens(t *testing.T, got []Token, want []tok) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].Kind != want[i].kind || got[i].Text != want[i].text {
			t.Errorf("token %d = %s %q, want %s %q", i, got[i].Kind, got[i].Text, want[i].kind, want[i].text)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		// Identifiers
		{"ident", "foo _bar x1", []tok{{Identifier, "foo"}, {Identifier, "_bar"}, {Identifier, "x1"}}},
		{"keyword_is_ident", "module", []tok{{Identifier, "module"}}},

		// Numbers
		{"numbers", "12 0x1F 3.14", []tok{{Number, "12"}, {Number, "0x1F"}, {Number, "3.14"}}},
		{"number_then_ident", "12ab", []tok{{Number, "12ab"}}},
		{"number_stops_at_g", "1g", []tok{{Number, "1"}, {Identifier, "g"}}},

		// Operators
		{"shift_assign", "a>>=b", []tok{{Identifier, "a"}, {Operator, ">>="}, {Identifier, "b"}}},
		{"split_ops", "a+-b", []tok{{Identifier, "a"}, {Operator, "+"}, {Operator, "-"}, {Identifier, "b"}}},
		{"namespace", "x::y", []tok{{Identifier, "x"}, {Operator, "::"}, {Identifier, "y"}}},
		{"parens", "(a)", []tok{{Operator, "("}, {Identifier, "a"}, {Operator, ")"}}},
		{"increment", "i++;", []tok{{Identifier, "i"}, {Operator, "++"}, {Operator, ";"}}},
		{"divide", "a/b", []tok{{Identifier, "a"}, {Operator, "/"}, {Identifier, "b"}}},
		{"divide_assign", "x/=2", []tok{{Identifier, "x"}, {Operator, "/="}, {Number, "2"}}},
		{"arrow", "a->b", []tok{{Identifier, "a"}, {Operator, "->"}, {Identifier, "b"}}},

		// Strings
		{"strings", `'a' "b c"`, []tok{{SingleQuotedString, "'a'"}, {DoubleQuotedString, `"b c"`}}},
		{"escaped_quote", `"a\"b"`, []tok{{DoubleQuotedString, `"a\"b"`}}},
		{"escaped_backslash", `"a\\" x`, []tok{{DoubleQuotedString, `"a\\"`}, {Identifier, "x"}}},
		{"other_quote_inside", `'say "hi"'`, []tok{{SingleQuotedString, `'say "hi"'`}}},
		{"string_then_op", `"a"+"b"`, []tok{{DoubleQuotedString, `"a"`}, {Operator, "+"}, {DoubleQuotedString, `"b"`}}},
		{"comment_chars_in_string", `"# // /*"`, []tok{{DoubleQuotedString, `"# // /*"`}}},

		// Comments
		{"hash_comment", "a # comment\nb", []tok{{Identifier, "a"}, {Identifier, "b"}}},
		{"slash_comment", "a // comment\nb", []tok{{Identifier, "a"}, {Identifier, "b"}}},
		{"slash_comment_glued", "a// c\nb", []tok{{Identifier, "a"}, {Identifier, "b"}}},
		{"block_comment", "a /* x \n y */ b", []tok{{Identifier, "a"}, {Identifier, "b"}}},
		{"block_comment_stars", "a /** x **/ b", []tok{{Identifier, "a"}, {Identifier, "b"}}},
		{"block_comment_then_slash", "a /* x */ / b", []tok{{Identifier, "a"}, {Operator, "/"}, {Identifier, "b"}}},

		// Whitespace
		{"empty", "", nil},
		{"only_space", " \t\n ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tokenize(t, tt.src), tt.want)
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	tokens := tokenize(t, "fn  int\n f()")
	want := []int{0, 4, 9, 10, 11}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, off := range want {
		if tokens[i].Offset != off {
			t.Errorf("token %d (%q) offset = %d, want %d", i, tokens[i].Text, tokens[i].Offset, off)
		}
	}
}

func TestTokenizeLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []int
	}{
		{"none", "a b", nil},
		{"plain", "a\nb\n\nc", []int{1, 3, 4}},
		{"in_line_comment", "a # x\nb", []int{5}},
		{"in_block_comment", "/*\n\n*/", []int{2, 3}},
		{"in_string", "'a\nb'", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, lines, err := Tokenize(tt.src)
			if tt.name == "in_string" {
				// A line break ends the string token; the closing quote
				// then opens a string that never ends.
				if err == nil {
					t.Fatal("expected error")
				}
				if len(lines) != 1 || lines[0] != 2 {
					t.Errorf("lines = %v, want [2]", lines)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			if len(lines) != len(tt.want) {
				t.Fatalf("lines = %v, want %v", lines, tt.want)
			}
			for i := range tt.want {
				if lines[i] != tt.want[i] {
					t.Errorf("lines = %v, want %v", lines, tt.want)
					break
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantOffset int
		wantMsg    string
	}{
		{"open_block_comment", "a /* b", 6, "multiline comment"},
		{"open_string", `x = "abc`, 8, "end of a string"},
		{"open_single_quoted", `'abc`, 4, "end of a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Tokenize(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			te, ok := err.(*TokenizeError)
			if !ok {
				t.Fatalf("error type = %T, want *TokenizeError", err)
			}
			if te.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", te.Offset, tt.wantOffset)
			}
			if !strings.Contains(te.Msg, tt.wantMsg) {
				t.Errorf("Msg = %q, want it to contain %q", te.Msg, tt.wantMsg)
			}
		})
	}
}

// retokenizeCorpus holds valid sources exercising every token kind.
var retokenizeCorpus = []string{
	"module M { field int x = 1; function int f(int a) { return a + x; } }",
	"fn void g() { x <<= 2; y >>= 1; a::b::c(1, 2)[3]++; }",
	`fd string s = 'it\'s' + "say \"hi\"" + "\\";`,
	"a/b /c // comment\n d*e /* block \n comment */ f",
	"x = 0x1F + 0b101 - 017 * 3.25 / 1e10 % 7",
	"if (a && b || !c ^^ d) then e-- else --f",
	"z = (ns::T<int, List<x>>) q; w -> v; p != q; r == s",
}

func TestRetokenizeIdempotent(t *testing.T) {
	for _, src := range retokenizeCorpus {
		first := tokenize(t, src)

		texts := make([]string, len(first))
		for i, tk := range first {
			texts[i] = tk.Text
		}
		second := tokenize(t, strings.Join(texts, " "))

		if len(first) != len(second) {
			t.Errorf("%q: %d tokens, re-tokenized to %d", src, len(first), len(second))
			continue
		}
		for i := range first {
			if first[i].Kind != second[i].Kind || first[i].Text != second[i].Text {
				t.Errorf("%q: token %d = %s, re-tokenized to %s", src, i, first[i], second[i])
			}
		}
	}
}
