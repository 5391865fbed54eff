// Package lang defines the language-parameterization surface spec §9
// calls for: which units run, in what order, and with what knobs, kept
// separate from the unit implementations themselves so a second
// language profile could be added without touching internal/units.
package lang

import (
	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/units"
)

// Group is one step of the analyzer pipeline: a tuple of units tried in
// order, where only the last is terminal (spec §4.6's pipeline halts
// after the first terminal group that yields any result). A
// single-unit group is just a Group with len(Units) == 1.
type Group struct {
	Units []units.Unit
}

// Profile is everything morph.New needs to build one language's
// pipeline from unbound unit templates.
type Profile struct {
	Code            string
	CharSubstitutes dawg.ReplaceMap
	Groups          []Group
}
