// Package wallrun holds the pure geometry and input predicates behind wall
// running: which surfaces can be run on, which side of the character they are
// on, whether the held axes allow a run, and the jump-off launch.
//
// Everything here is stateless; the state machine lives in the system package.
package wallrun
