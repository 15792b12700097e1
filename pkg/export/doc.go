// Package export renders a diagram snapshot to Graphviz DOT and SVG.
//
// The exporter reads live geometry from the stage when available and falls
// back to seed positions, so a snapshot taken mid-session reflects what the
// solver actually produced. It is a debugging and documentation aid; nothing
// in the animation path depends on it.
package export
