package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTeX Format = "tex"
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatTeX}

var contentTypes = map[Format]string{
	FormatTeX: "text/x-tex; charset=utf-8",
	FormatPDF: "application/pdf",
	FormatSVG: "image/svg+xml",
	FormatPNG: "image/png",
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string { return contentTypes[f] }

// ParseFormat parses a format name such as "svg".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	if _, ok := contentTypes[f]; !ok {
		return "", unsupported()
	}
	return f, nil
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", unsupported()
	}
	return ParseFormat(ext)
}

func unsupported() error {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return errors.New(errors.ErrCodeUnsupported,
		"Unsupported file format, please choose one of [%s]", strings.Join(names, ", "))
}
