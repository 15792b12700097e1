// Package pkg provides the core libraries for the glowgraph animation engine.
//
// # Overview
//
// Glowgraph animates a node-and-edge diagram through a scripted narrative:
// an annealed force solver lays the graph out live, a timeline engine
// choreographs attribute mutations, and a phase controller sequences the two
// into discrete story beats. The pkg directory is organized as:
//
//  1. [scene] - Shared model: graph, attribute stage, tuning, deterministic hash
//  2. [physics] - Annealed force-directed layout solver
//  3. [timeline] - Instruction timelines, easing, the player and cancellable handles
//  4. [choreo] - Phase state machine and per-phase choreography
//  5. [bloom] - Procedural decorative layout with a one-shot reveal
//  6. [export] - DOT and SVG snapshots
//  7. [errors] - Structured error codes
//  8. [observability] - Pluggable engine hooks
//
// # Architecture
//
// The typical frame:
//
//	solver tick (positions, edge endpoints)
//	         ↓
//	shared stage (flat attribute store)
//	         ↑
//	timeline player (colors, radii, opacity, dash)
//
// The solver and the player own disjoint attribute sets, so their writes
// never conflict. The phase controller reads live geometry from the stage
// when it builds a phase's timeline and owns at most one running handle.
package pkg
