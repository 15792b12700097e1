// Package bloom generates a decorative node-and-edge layout from fixed
// geometric templates and plays a one-shot reveal sequence over it.
//
// Everything here is a pure function of the template data and integer
// indices. Jitter, reveal noise and the breathing subset all come from the
// deterministic hash in package scene, never from a stateful random source,
// so regenerating with the same inputs reproduces bit-identical coordinates,
// ordering and subset membership.
package bloom
