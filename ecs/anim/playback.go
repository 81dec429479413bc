package anim

import "github.com/milk9111/virtualoffice/ecs/component"

// Play starts clip from its first frame. Playing the clip that is already
// running leaves it untouched.
func Play(a *component.Animator, clip *Clip) {
	if a == nil || clip == nil {
		return
	}
	if a.Playing && a.Current == clip.Key {
		return
	}
	a.Current = clip.Key
	a.Frame = 0
	a.FrameTimer = 0
	a.Loops = 0
	a.Playing = true
}

// Step advances the animator by one tick and returns the frame to show.
func Step(a *component.Animator, clip *Clip) FrameRef {
	if a == nil || clip == nil || len(clip.Frames) == 0 {
		return FrameRef{}
	}
	if a.Frame >= len(clip.Frames) || a.Frame < 0 {
		a.Frame = 0
	}
	if !a.Playing {
		return clip.Frames[a.Frame]
	}

	a.FrameTimer++
	if a.FrameTimer < clip.TicksPerFrame() {
		return clip.Frames[a.Frame]
	}
	a.FrameTimer = 0
	a.Frame++
	if a.Frame >= len(clip.Frames) {
		a.Loops++
		if clip.Repeat == RepeatForever || a.Loops <= clip.Repeat {
			a.Frame = 0
		} else {
			a.Frame = len(clip.Frames) - 1
			a.Playing = false
		}
	}
	return clip.Frames[a.Frame]
}

// Current returns the frame the animator points at without advancing it.
func Current(a *component.Animator, clip *Clip) FrameRef {
	if a == nil || clip == nil || len(clip.Frames) == 0 {
		return FrameRef{}
	}
	if a.Frame < 0 || a.Frame >= len(clip.Frames) {
		return clip.Frames[0]
	}
	return clip.Frames[a.Frame]
}
