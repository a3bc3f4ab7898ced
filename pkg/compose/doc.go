// Package compose fills the CLEVA-Compass TikZ template with entries.
//
// # Overview
//
// A compass template is a LaTeX document that contains four placeholder
// comments. [Fill] replaces each of them with a generated fragment:
//
//	%-$LEGEND$             tabular legend below the compass ([Legend])
//	%-$OUTER-CIRCLE$       wedges of the outer ring ([OuterRing])
//	%-$INNER-CIRCLE$       radar polygons of the inner ring ([InnerRing])
//	%-$NUMBER-OF-METHODS$  \newcommand{\M}{n} ([MethodCount])
//
// Every builder is a pure function of the entry slice. Composing the same
// entries twice yields byte-identical output, and reordering entries changes
// both the legend layout and the angular offset of their wedges.
//
// # Geometry
//
// The outer ring is split into 15 slots of [SlotAngle] degrees, one per outer
// level attribute in [compass.OuterSlots] order. Inside a slot every entry
// gets an equal share, so entry e of M in slot s spans
//
//	[s*B + e*B/M, s*B + (e+1)*B/M]
//
// Slots past index 7 lie on the lower half of the circle and have start and
// end swapped. [Wedges] exposes the computed geometry.
//
// The inner ring connects the anchors D1..D11 placed by the template at
// [AxisAngle] degree intervals. The tri-state value of attribute i picks one
// of the anchors D<i>-0, D<i>-1, D<i>-2.
//
// # Templates
//
// [DefaultTemplate] returns the bundled template. [FillFile] reads a custom
// one from disk. Placeholders missing from a template are not reported; the
// corresponding fragment is simply dropped.
package compose
