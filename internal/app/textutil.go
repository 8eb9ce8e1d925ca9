package app

import (
	"fmt"
	"strings"
)

var typeBadges = map[string]string{
	"pdf": "PDF", "doc": "DOC", "docx": "DOC",
	"xls": "XLS", "xlsx": "XLS", "csv": "XLS",
	"png": "IMG", "jpg": "IMG", "jpeg": "IMG", "gif": "IMG",
	"bmp": "IMG", "tif": "IMG", "tiff": "IMG", "svg": "IMG",
	"dwg": "CAD", "dxf": "CAD",
	"txt": "TXT", "rtf": "TXT",
}

// typeBadge returns the short badge shown next to a file, falling back
// to the upper-cased extension.
func typeBadge(ext string) string {
	if b, ok := typeBadges[ext]; ok {
		return b
	}
	if ext == "" {
		return "FILE"
	}
	return strings.ToUpper(ext)
}

// formatSize renders a byte count for the detail pane.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
