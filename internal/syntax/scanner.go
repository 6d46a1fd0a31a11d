package syntax

import "fmt"

// TokenizeError reports malformed input found by the tokenizer.
type TokenizeError struct {
	Offset int // byte offset where the error was detected
	Msg    string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// scanner holds the state of a single tokenizing pass.
type scanner struct {
	src    string
	tokens []Token
	lines  LineTable

	// In-progress token
	cur     Token
	inToken bool

	// Comment and string state
	inLineComment  bool
	inBlockComment bool
	escaped        bool
}

// Tokenize splits src into tokens and records the byte offset of every
// line break. On failure the returned LineTable still covers the input up
// to the error, so the error offset can be mapped to a line.
func Tokenize(src string) ([]Token, LineTable, error) {
	s := &scanner{src: src}
	if err := s.scan(); err != nil {
		return nil, s.lines, err
	}
	return s.tokens, s.lines, nil
}

func (s *scanner) scan() error {
	var last byte
	for pos := 0; pos < len(s.src); pos++ {
		c := s.src[pos]
		if err := s.step(c, last, pos); err != nil {
			return err
		}
		last = c
	}
	return s.finish(len(s.src))
}

// step processes a single input byte. last is the byte before c.
func (s *scanner) step(c, last byte, pos int) error {
	// Line breaks end tokens and single-line comments, even inside a
	// multi-line comment, so that the line table stays complete.
	if c == '\n' {
		s.lines = append(s.lines, pos)
		s.inLineComment = false
		s.flush()
		return nil
	}

	if s.inBlockComment {
		if c == '/' && last == '*' {
			s.inBlockComment = false
		}
		return nil
	}
	if s.inLineComment {
		return nil
	}

	if s.inToken {
		cont, err := s.continueToken(c, pos)
		if err != nil || cont {
			return err
		}
		s.flush()
	}

	if c <= ' ' {
		return nil
	}

	// Comment openers. The first '/' was emitted as an operator token on
	// the previous byte and has to be taken back.
	switch {
	case c == '#':
		s.inLineComment = true
		return nil
	case c == '/' && last == '/' && s.dropSlash(pos-1):
		s.inLineComment = true
		return nil
	case c == '*' && last == '/' && s.dropSlash(pos-1):
		s.inBlockComment = true
		return nil
	}

	s.start(c, pos)
	return nil
}

// continueToken applies the kind-specific continuation rules to c.
// It reports whether c was absorbed into the current token.
func (s *scanner) continueToken(c byte, pos int) (bool, error) {
	switch s.cur.Kind {
	case Identifier:
		if isLetter(c) || isDigit(c) {
			s.cur.Text += string(c)
			return true, nil
		}

	case Number:
		if isHexDigit(c) || c == '.' || c == 'x' || c == 'X' {
			s.cur.Text += string(c)
			return true, nil
		}

	case Operator:
		if isMulticharPrefix(s.cur.Text + string(c)) {
			s.cur.Text += string(c)
			return true, nil
		}
		if len(s.cur.Text) != 1 && !isMulticharOperator(s.cur.Text) {
			return false, &TokenizeError{Offset: pos, Msg: "unable to parse multichar operator " + s.cur.Text}
		}

	case SingleQuotedString, DoubleQuotedString:
		s.cur.Text += string(c)
		if c == '\\' {
			s.escaped = !s.escaped
			return true, nil
		}
		closing := !s.escaped && (s.cur.Kind == SingleQuotedString && c == '\'' ||
			s.cur.Kind == DoubleQuotedString && c == '"')
		s.escaped = false
		if closing {
			// Strings end on their closing quote rather than on the
			// first byte that does not belong to them.
			s.flush()
		}
		return true, nil
	}
	return false, nil
}

// start opens a new token beginning with c.
func (s *scanner) start(c byte, pos int) {
	kind := Operator
	switch {
	case isLetter(c):
		kind = Identifier
	case isDigit(c):
		kind = Number
	case c == '\'':
		kind = SingleQuotedString
	case c == '"':
		kind = DoubleQuotedString
	}
	s.cur = Token{Kind: kind, Text: string(c), Offset: pos}
	s.inToken = true
	s.escaped = false
}

// flush emits the in-progress token, if any.
func (s *scanner) flush() {
	if s.inToken {
		s.tokens = append(s.tokens, s.cur)
		s.inToken = false
	}
}

// dropSlash removes the single '/' operator token emitted at offset off.
// It reports false when no such token exists, e.g. when the previous '/'
// closed a multi-line comment.
func (s *scanner) dropSlash(off int) bool {
	n := len(s.tokens)
	if n == 0 {
		return false
	}
	t := s.tokens[n-1]
	if t.Kind != Operator || t.Text != "/" || t.Offset != off {
		return false
	}
	s.tokens = s.tokens[:n-1]
	return true
}

// finish performs the end-of-input checks.
func (s *scanner) finish(pos int) error {
	if s.inBlockComment {
		return &TokenizeError{Offset: pos, Msg: "reached the end of the file before the end of a multiline comment"}
	}
	if !s.inToken {
		return nil
	}
	switch {
	case s.cur.Kind.IsString():
		return &TokenizeError{Offset: pos, Msg: "reached the end of the file before the end of a string"}
	case s.cur.Kind == Operator && len(s.cur.Text) != 1 && !isMulticharOperator(s.cur.Text):
		return &TokenizeError{Offset: pos, Msg: "unable to parse multichar operator " + s.cur.Text}
	}
	s.flush()
	return nil
}

// Character classification helpers

// isLetter reports whether c can start an identifier (a-z, A-Z, or _).
func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// isDigit reports whether c is a decimal digit (0-9).
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isHexDigit reports whether c is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= lower(c) && lower(c) <= 'f'
}

// lower returns the lowercase version of c if c is an ASCII letter.
func lower(c byte) byte {
	return ('a' - 'A') | c
}
