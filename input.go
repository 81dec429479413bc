package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/virtualoffice/ecs"
	"github.com/milk9111/virtualoffice/ecs/component"
)

const stickDeadzone = 0.3

// inputSystem polls keyboard and the first gamepad into the player's Input.
type inputSystem struct{}

func (s *inputSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, in *component.Input) {
		var moveX, moveY float64
		// Keyboard WASD or arrows
		if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
			moveX -= 1
		}
		if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
			moveX += 1
		}
		if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
			moveY -= 1
		}
		if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
			moveY += 1
		}

		interact := inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeySpace)

		// Gamepad: left stick moves, the primary button interacts
		if ids := ebiten.GamepadIDs(); len(ids) > 0 {
			gid := ids[0]
			if lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal); lx < -stickDeadzone || lx > stickDeadzone {
				moveX = lx
			}
			if ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical); ly < -stickDeadzone || ly > stickDeadzone {
				moveY = ly
			}
			interact = interact || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		}

		in.MoveX, in.MoveY = moveX, moveY
		in.InteractPressed = interact
	})
}
