package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

const jobName = "compass"

var installHints = map[string]string{
	"pdflatex": "install a TeX distribution (TeX Live, MiKTeX or MacTeX)",
	"pdf2svg":  "brew install pdf2svg (macOS), apt install pdf2svg (Linux)",
	"pdftoppm": "brew install poppler (macOS), apt install poppler-utils (Linux)",
}

// tools returns the executables needed for f.
func tools(f Format) []string {
	switch f {
	case FormatPDF:
		return []string{"pdflatex"}
	case FormatSVG:
		return []string{"pdflatex", "pdf2svg"}
	case FormatPNG:
		return []string{"pdflatex", "pdftoppm"}
	default:
		return nil
	}
}

// Available reports whether every tool needed for f is on PATH. The
// returned error is UNAVAILABLE and names the missing tool.
func Available(f Format) error {
	if _, ok := contentTypes[f]; !ok {
		return unsupported()
	}
	for _, tool := range tools(f) {
		if _, err := exec.LookPath(tool); err != nil {
			return errors.New(errors.ErrCodeUnavailable,
				"%s export requires %s: %s", f, tool, installHints[tool])
		}
	}
	return nil
}

// compilePDF runs pdflatex on doc inside dir and returns the PDF path.
func compilePDF(ctx context.Context, dir, doc string) (string, error) {
	src := filepath.Join(dir, jobName+".tex")
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", src)
	}
	out, err := run(ctx, dir, "pdflatex",
		"--shell-escape", "-file-line-error", "-interaction=nonstopmode", "-halt-on-error",
		jobName+".tex")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "pdflatex: %s", latexErrors(out))
	}
	pdf := filepath.Join(dir, jobName+".pdf")
	if _, err := os.Stat(pdf); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "pdflatex produced no PDF: %s", latexErrors(out))
	}
	return pdf, nil
}

func pdfToSVG(ctx context.Context, dir, pdf string) ([]byte, error) {
	dst := filepath.Join(dir, jobName+".svg")
	if out, err := run(ctx, dir, "pdf2svg", pdf, dst); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "pdf2svg: %s", strings.TrimSpace(out))
	}
	return readOutput(dst)
}

func pdfToPNG(ctx context.Context, dir, pdf string, width int) ([]byte, error) {
	prefix := filepath.Join(dir, jobName)
	if out, err := run(ctx, dir, "pdftoppm", "-png", "-singlefile",
		"-scale-to-x", strconv.Itoa(width), "-scale-to-y", "-1", pdf, prefix); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "pdftoppm: %s", strings.TrimSpace(out))
	}
	return readOutput(prefix + ".png")
}

func readOutput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "read %s", filepath.Base(path))
	}
	return data, nil
}

// run executes name in dir and returns combined output.
func run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// latexErrors extracts the file:line: and "!" error lines from a pdflatex
// log, at most five of them.
func latexErrors(log string) string {
	var lines []string
	for _, line := range strings.Split(log, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "!") || strings.HasPrefix(line, "./"+jobName+".tex:") {
			lines = append(lines, line)
			if len(lines) == 5 {
				break
			}
		}
	}
	if len(lines) == 0 {
		return "see the LaTeX log for details"
	}
	return strings.Join(lines, "; ")
}
