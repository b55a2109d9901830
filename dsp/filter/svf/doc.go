// Package svf implements a second-order state-variable filter using Andrew
// Simper's topology-preserving transform (TPT) discretization.
//
// The TPT structure keeps its integrator state meaningful across coefficient
// changes, so filters can be retuned while running without resetting state.
// A parameter jump produces only a brief transient instead of a click.
package svf
