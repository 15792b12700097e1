// Package scene defines the static graph model and the shared attribute stage
// for the glowgraph engine.
//
// # Graph Model
//
// A [Graph] is the immutable description of the diagram: nodes with stable
// identities, seed positions and narrative role flags, and edges between them.
// The graph is validated eagerly at construction: an edge naming a node that
// does not exist is a data-authoring bug and fails loudly, never silently.
//
// Two narrative variants share the model:
//
//   - [VariantGapRepair]: exactly one source/target role pair and at most one
//     broken edge between them.
//   - [VariantKnownUnknown]: a named subset of nodes is "known"; edge
//     classification derives from endpoint membership.
//
// Edge classification ([Graph.Classify]) is a pure function of current role
// flags and is recomputed on demand, never stored.
//
// # Stage
//
// The [Stage] is the flat attribute-mutation contract between the engine and
// the presentation layer. Elements are mounted once by the presentation layer
// and never re-rendered; the engine mutates per-element attributes (position,
// radius, color, opacity, dash) through the stage. Mutating an element that
// has not been mounted yet is a silent no-op, since mount timing relative to
// the first tick is not guaranteed.
//
// Attribute ownership is split to keep writers from racing: the physics solver
// is the only writer of node positions and edge endpoint coordinates, while
// the timeline engine owns color, radius, opacity and dash attributes. The
// marker element is the one exception; it has no node identity and its
// position is driven by the timeline during the repair phase.
//
// # Configuration
//
// Numeric tuning and color palettes are configuration, not behavior. [Config]
// carries force constants, phase timings and palettes, loadable from TOML with
// compiled-in defaults.
package scene
