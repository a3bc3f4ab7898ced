package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"cleva_filled.svg", FormatSVG, false},
		{"out/compass.PNG", FormatPNG, false},
		{"compass.pdf", FormatPDF, false},
		{"compass.tex", FormatTeX, false},
		{"compass.jpg", "", true},
		{"compass", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeUnsupported) {
				t.Errorf("FormatFromPath(%q) error = %v, want UNSUPPORTED", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
}

func TestUnsupportedMessage(t *testing.T) {
	_, err := ParseFormat("gif")
	want := "Unsupported file format, please choose one of [svg, png, pdf, tex]"
	if errors.UserMessage(err) != want {
		t.Errorf("message = %q, want %q", errors.UserMessage(err), want)
	}
}

func TestContentType(t *testing.T) {
	if got := FormatSVG.ContentType(); got != "image/svg+xml" {
		t.Errorf("ContentType(svg) = %q", got)
	}
	if !strings.HasPrefix(FormatTeX.ContentType(), "text/x-tex") {
		t.Errorf("ContentType(tex) = %q", FormatTeX.ContentType())
	}
}
