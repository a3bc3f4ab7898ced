// Package compass defines the CLEVA-Compass entry model.
//
// # Overview
//
// A compass entry describes one continual-learning method along two fixed
// taxonomies:
//
//   - The inner level: 11 tri-state attributes (none, supervised,
//     unsupervised) drawn as a radar-style polygon.
//   - The outer level: 15 boolean attributes drawn as wedges ("strips") on
//     the outer ring.
//
// Every entry also carries a colour name and a free-form legend label.
//
// # Iteration Order
//
// The order of attributes is load-bearing. Inner attribute i is bound to the
// template anchor D{i+1}, so [InnerAttributes] is both the declaration and the
// drawing order. The outer level keeps two separate lists: [OuterAttributes]
// is the declaration order used for serialisation, while [OuterSlots] assigns
// each attribute to one of the 15 angular slots of the diagram. Neither list
// is derived from the other.
//
// # Entry Lists
//
// [List] is the single owned, ordered collection of entries behind one
// diagram. Entries are only replaced wholesale (update or delete by index).
// The position of an entry determines both its legend cell and its angular
// offset inside each outer slot, so reordering changes the rendered diagram.
//
// # Colours
//
// [Palette] maps colour names to a TeX colour expression and a display hex
// value. It starts with the six base colours and can register further names
// from a secondary pool at runtime:
//
//	p := compass.DefaultPalette()
//	if err := p.Register("teal"); err != nil {
//	    return err
//	}
//	p.TeX("green") // "green!50!black"
package compass
