// Package pkg holds the clevacompass libraries.
//
// # Overview
//
// A CLEVA-Compass places continual learning methods on two levels: an inner
// star plot of eleven setup attributes and an outer ring of fifteen reported
// measurements. The packages are organised as follows:
//
//  1. [compass] - entry model, attribute order and colour palette
//  2. [compose] - fills the TikZ template with legend, rings and method count
//  3. [io] - JSON entry documents
//  4. [render] - compiles the document to PDF, SVG or PNG
//  5. [store], [cache], [config] - persistence and settings
//  6. [integrations/github] - downloads published method entries
//
// # Data Flow
//
//	entry document (JSON) / store
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [compose] package (template fill)
//	         ↓
//	    [render] package (pdflatex, pdf2svg, pdftoppm)
//	         ↓
//	    TEX/PDF/SVG/PNG output
//
// # Quick Start
//
//	entries, err := io.ImportJSON("data.json")
//	if err != nil {
//	    return err
//	}
//	tex := compose.Fill(compose.DefaultTemplate(), entries)
//	svg, err := render.New().Render(ctx, tex, render.FormatSVG)
package pkg
