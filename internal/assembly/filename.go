package assembly

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// mimeTypes maps produced formats to their media types. Unknown formats get
// the generic binary type.
var mimeTypes = map[Format]string{
	FormatHWP:     "application/haansofthwp",
	FormatDOCX:    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPDF:     "application/pdf",
	Format("odt"): "application/vnd.oasis.opendocument.text",
	FormatHTML:    "text/html",
	FormatTXT:     "text/plain",
}

func mimeType(format Format) string {
	if mt, ok := mimeTypes[format]; ok {
		return mt
	}
	return "application/octet-stream"
}

// outputFileName derives the download name from the source document's base
// name (or the program name when there is none) plus a completion marker
// and date stamp.
func outputFileName(originalFileName, programName string, format Format, now time.Time) string {
	base := programName
	if originalFileName != "" {
		name := filepath.Base(originalFileName)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if base == "" {
		base = "application"
	}
	return fmt.Sprintf("%s_완성본_%s.%s", base, now.Format("20060102"), format)
}
