package syntax

import (
	"io"
	"strings"
)

// ReadSource reads an entire source text from r.
// Windows line endings are normalized to '\n' and the result always ends
// with a line break, so the final line is present in the LineTable.
func ReadSource(r io.Reader) (string, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	src := strings.ReplaceAll(string(buf), "\r\n", "\n")
	if src != "" && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	return src, nil
}
