// Package gesture implements the seven temporal gesture state machines and
// the arbiter that composes their per-frame output. Each machine is a pure
// function of its own state plus the snapshot it is fed; machines never
// observe each other's events.
package gesture

import "github.com/sarinacheng/handpilot/pkg/handpilot"

// Machine is satisfied by every gesture detector: update the machine's
// internal state with one snapshot and return the events it produces. All
// machines are idempotent under replay of the same snapshot.
type Machine interface {
	Update(snap handpilot.Snapshot) []handpilot.Event
}
