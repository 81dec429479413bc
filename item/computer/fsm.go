package computer

import "github.com/milk9111/virtualoffice/item"

// Transition returns the status a trigger moves to and the signal announcing
// it. Any status other than on is treated as off.
func Transition(s Status) (Status, item.Signal) {
	if s == StatusOn {
		return StatusOff, item.SignalTurnOff
	}
	return StatusOn, item.SignalTurnOn
}
