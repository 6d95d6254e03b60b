package community

import (
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sim"
)

// HookPosStateChange marks a person changing disease state. The hook item is a
// StateChange.
var HookPosStateChange = &sim.HookPos{Name: "StateChange"}

// HookPosMove marks a person moving between places. The hook item is a
// Movement.
var HookPosMove = &sim.HookPos{Name: "Move"}

// StateChange describes one disease state transition.
type StateChange struct {
	Time   sim.VTimeInSec
	Person PersonID
	Place  PlaceID
	From   disease.State
	To     disease.State
}

// Movement describes one person going from one place to another.
type Movement struct {
	Time   sim.VTimeInSec
	Person PersonID
	From   PlaceID
	To     PlaceID
}
