package system

import (
	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/anim"
	"github.com/milk9111/virtualoffice/ecs/component"
)

// AnimationSystem steps every animator one tick and points its sprite at
// the current frame.
type AnimationSystem struct {
	library *anim.Library
}

func NewAnimationSystem(library *anim.Library) *AnimationSystem {
	return &AnimationSystem{library: library}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, animator *component.Animator, sprite *component.Sprite) {
		if animator.Current == "" {
			return
		}
		clip, ok := a.library.Get(animator.Current)
		if !ok {
			return
		}
		ref := anim.Step(animator, clip)
		sprite.Texture = ref.Texture
		sprite.Frame = ref.Frame
	})
}
