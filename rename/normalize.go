package rename

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeInput trims and NFKC-folds raw user input so that full-width
// and composed variants sanitize the same way as their ASCII forms.
func normalizeInput(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}
