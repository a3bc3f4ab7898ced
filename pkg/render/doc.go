// Package render turns composed compass documents into images.
//
// Rendering shells out to a TeX installation:
//
//   - pdf: pdflatex
//   - svg: pdflatex, then pdf2svg
//   - png: pdflatex, then pdftoppm (poppler)
//
// [Available] reports whether the tools for a format are installed. Callers
// check it first and show a warning instead of failing hard.
//
//	r := render.New(render.WithCache(c), render.WithPNGWidth(1200))
//	png, err := r.Render(ctx, tex, render.FormatPNG)
//
// Documents are compiled in a temporary directory that is removed afterwards.
// Results are cached by the SHA-256 of the document together with the format
// and width, so re-rendering an unchanged compass is free.
//
// [Standalone] wraps a bare tikzpicture into a standalone document; the
// bundled template already is one and passes through unchanged.
package render
