package component

// TTL destroys its entity after Frames update ticks.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
