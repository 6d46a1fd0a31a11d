package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.cl", 10, 5),
			wantStr: "test.cl:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5),
			wantStr: "10:5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	if !NewPos("test.cl", 1, 1).IsValid() {
		t.Error("NewPos(1, 1).IsValid() = false, want true")
	}
	if (Pos{}).IsValid() {
		t.Error("Pos{}.IsValid() = true, want false")
	}
}

func TestLineTableLine(t *testing.T) {
	// "abc\ndef\n\nx"
	lt := LineTable{3, 7, 8}

	tests := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{2, 1},
		{3, 1}, // the line break belongs to the line it ends
		{4, 2},
		{7, 2},
		{8, 3},
		{9, 3}, // past the final break: the line that break ends
		{42, 3},
		{-1, 3},
	}

	for _, tt := range tests {
		if got := lt.Line(tt.offset); got != tt.want {
			t.Errorf("Line(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestLineTableEmpty(t *testing.T) {
	var lt LineTable
	if got := lt.Line(5); got != 1 {
		t.Errorf("Line(5) = %d, want 1", got)
	}
	if got := lt.Line(-1); got != 1 {
		t.Errorf("Line(-1) = %d, want 1", got)
	}
}

func TestLineTablePosition(t *testing.T) {
	lt := LineTable{3, 7, 8}

	tests := []struct {
		offset int
		want   string
	}{
		{0, "f.cl:1:1"},
		{5, "f.cl:2:2"},
		{9, "f.cl:3:2"},
		{-1, "f.cl:3:1"},
	}

	for _, tt := range tests {
		if got := lt.Position("f.cl", tt.offset).String(); got != tt.want {
			t.Errorf("Position(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}

func TestLineTableEndOfInputError(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"field int x;\n/* open\n", 2},
		{"/* a\nb\nc\n", 3},
	}

	for _, tt := range tests {
		_, lines, err := Tokenize(tt.src)
		te, ok := err.(*TokenizeError)
		if !ok {
			t.Fatalf("Tokenize(%q) error = %v, want *TokenizeError", tt.src, err)
		}
		if got := lines.Line(te.Offset); got != tt.want {
			t.Errorf("Tokenize(%q): error at offset %d is on line %d, want %d", tt.src, te.Offset, got, tt.want)
		}
	}
}
