package ecs

// System is one stage of the per-tick update.
type System interface {
	Update(w *World)
}

// SystemFunc lets a plain function act as a System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler runs its systems in the order they were added, once per tick.
type Scheduler struct {
	stages []System
	ticks  uint64
}

// NewScheduler builds a scheduler from systems; nil entries are skipped.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(sys System) {
	if sys == nil {
		return
	}
	s.stages = append(s.stages, sys)
}

// Run performs one tick: every system, then the end of tick on w, which
// drops undrained events.
func (s *Scheduler) Run(w *World) {
	for _, sys := range s.stages {
		sys.Update(w)
	}
	w.EndTick()
	s.ticks++
}

// Ticks counts completed Run calls.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Len returns the number of systems.
func (s *Scheduler) Len() int { return len(s.stages) }
