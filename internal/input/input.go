// Package input maps viewer keys to logical actions with per-frame edge
// detection.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key
type Action int

const (
	ActionOrbitLeft Action = iota
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionToggleBlinnPhong
	ActionToggleSpecularFix
	ActionLightRangeUp
	ActionLightRangeDown
	ActionNextPipeline
	ActionQuit
	ActionCount // sentinel for array sizing
)

// InputManager tracks which actions are held and which changed this frame.
type InputManager struct {
	mu sync.RWMutex

	// one key can drive several actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates a manager with the default viewer bindings.
func NewInputManager() *InputManager {
	im := &InputManager{keyToActions: make(map[glfw.Key][]Action)}

	im.BindKey(glfw.KeyA, ActionOrbitLeft)
	im.BindKey(glfw.KeyLeft, ActionOrbitLeft)
	im.BindKey(glfw.KeyD, ActionOrbitRight)
	im.BindKey(glfw.KeyRight, ActionOrbitRight)
	im.BindKey(glfw.KeyW, ActionOrbitUp)
	im.BindKey(glfw.KeyUp, ActionOrbitUp)
	im.BindKey(glfw.KeyS, ActionOrbitDown)
	im.BindKey(glfw.KeyDown, ActionOrbitDown)
	im.BindKey(glfw.KeyE, ActionZoomIn)
	im.BindKey(glfw.KeyQ, ActionZoomOut)
	im.BindKey(glfw.KeyB, ActionToggleBlinnPhong)
	im.BindKey(glfw.KeyH, ActionToggleSpecularFix)
	im.BindKey(glfw.KeyEqual, ActionLightRangeUp)
	im.BindKey(glfw.KeyKPAdd, ActionLightRangeUp)
	im.BindKey(glfw.KeyMinus, ActionLightRangeDown)
	im.BindKey(glfw.KeyKPSubtract, ActionLightRangeDown)
	im.BindKey(glfw.KeyP, ActionNextPipeline)
	im.BindKey(glfw.KeyEscape, ActionQuit)
	return im
}

// BindKey adds action to the actions driven by key.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// HandleKeyEvent records a key transition. Call it from the window's key
// callback.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, ok := im.keyToActions[key]
	if !ok {
		return
	}
	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// SetKeyCallback routes the window's key events into im.
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears the edge flags. Call it once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
}

// IsActive reports whether the action is held.
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed reports whether the action went down this frame.
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}
