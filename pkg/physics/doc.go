// Package physics computes continuously evolving node positions with an
// annealed force-directed solver.
//
// Four additive forces act per tick: pairwise repulsion bounded away from the
// distance singularity, spring attraction along edges toward a rest length, a
// uniform pull toward the focal point, and a minimum-separation push that
// keeps nodes from overlapping. The solver carries an energy level (alpha)
// that decays every tick; once it falls below the idle threshold the layout
// is settled and force computation stops until something perturbs it.
//
// Perturbation comes from two places. A drag gesture pins the dragged node to
// pointer-derived coordinates (forces no longer move it) and holds alpha
// elevated until release. Pointer proximity nudges nearby nodes toward the
// pointer, scaled by remaining distance and current alpha, re-warming the
// solver for as long as the pointer is present.
//
// The solver is the only writer of node positions and edge endpoint
// coordinates on the stage, and it writes them every tick. Elements the
// presentation layer has not mounted yet are skipped silently.
package physics
