// Package chem implements the numeric models behind the demonstrations.
//
// Everything here is a pure function of its inputs: no clocks, no random
// sources and no shared state. Stateful concerns such as "fire once" flags
// belong to the caller.
//
// # Models
//
//   - [RateConvergence]: forward and reverse rates easing to a common value
//   - [Titration]: strong acid into strong base pH curve
//   - [Indicator]: pH to solution tint
//   - [RedoxPhaseAt]: discrete phase of a 0..100 reaction progress
//   - [Cell]: electrode masses of a Zn/Cu galvanic cell
//   - [Elements]: proton, neutron and shell table for H..Ar
package chem
