// SPDX-License-Identifier: EPL-2.0

package control

// Gate is a digital input sampled once per tick. The zero Gate is low.
type Gate struct {
	state bool
	trig  bool
}

// Set samples the gate level for the current tick. Trig reports true until
// the next Set if the level went from low to high.
func (g *Gate) Set(level bool) {
	g.trig = level && !g.state
	g.state = level
}

// Trig reports a rising edge on the last Set.
func (g *Gate) Trig() bool { return g.trig }

// State reports the level of the last Set.
func (g *Gate) State() bool { return g.state }
