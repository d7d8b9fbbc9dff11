package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEdgesLastOneFrame(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyB, glfw.Press)
	if !im.JustPressed(ActionToggleBlinnPhong) || !im.IsActive(ActionToggleBlinnPhong) {
		t.Fatal("press not recorded")
	}
	im.PostUpdate()
	if im.JustPressed(ActionToggleBlinnPhong) {
		t.Fatal("edge should clear after PostUpdate")
	}

	// key repeat keeps the action held without a new edge
	im.HandleKeyEvent(glfw.KeyB, glfw.Repeat)
	if im.JustPressed(ActionToggleBlinnPhong) || !im.IsActive(ActionToggleBlinnPhong) {
		t.Fatal("repeat should not re-trigger")
	}
	im.HandleKeyEvent(glfw.KeyB, glfw.Release)
	if !im.JustReleased(ActionToggleBlinnPhong) || im.IsActive(ActionToggleBlinnPhong) {
		t.Fatal("release not recorded")
	}
}

func TestSeveralKeysPerAction(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	if !im.IsActive(ActionOrbitLeft) {
		t.Fatal("arrow key should orbit")
	}
	im.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	if im.IsActive(ActionCount) || im.JustPressed(Action(-1)) {
		t.Fatal("out of range actions are never active")
	}
}
