package render

import "strings"

const standaloneMarker = `documentclass[tikz]{standalone}`

const standaloneDoc = `
\documentclass[tikz]{standalone}

\usepackage{times}
\usepackage{tikz}
\usetikzlibrary{shapes}
\usetikzlibrary{mindmap,shadows,backgrounds,decorations.pathmorphing,decorations.text,positioning}
\usepackage{hyperref}

`

// Standalone returns tex as a compilable standalone document. Documents
// already using the tikz standalone class are returned unchanged. Otherwise
// everything before \begin{tikzpicture} is kept as preamble, minus any
// \documentclass and \begin{document} lines.
func Standalone(tex string) string {
	if strings.Contains(tex, standaloneMarker) {
		return tex
	}

	header, picture := "", tex
	if i := strings.Index(tex, `\begin{tikzpicture}`); i >= 0 {
		header, picture = tex[:i], tex[i:]
	}
	var kept []string
	for _, line := range strings.Split(header, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, `\documentclass`) || strings.HasPrefix(t, `\begin{document}`) {
			continue
		}
		kept = append(kept, line)
	}
	picture = strings.Replace(picture, `\end{document}`, "", 1)

	var b strings.Builder
	b.WriteString(standaloneDoc)
	b.WriteString(strings.TrimSpace(strings.Join(kept, "\n")))
	b.WriteString("\n\\begin{document}\n")
	b.WriteString(strings.TrimSpace(picture))
	b.WriteString("\n\n\\end{document}\n")
	return b.String()
}
