package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type ItemTag struct{}

var ItemTagComponent = NewComponent[ItemTag]()
