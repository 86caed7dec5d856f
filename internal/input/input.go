// Package input maps GLFW keys and mouse buttons to viewer actions with
// per-frame edge detection.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionBoost
	ActionPause
	ActionBreak
	ActionPlace
	ActionToggleGreedy
	ActionToggleFrustum
	ActionToggleCombined
	ActionToggleWireframe
	ActionBlock1
	ActionBlock2
	ActionBlock3
	ActionBlock4
	ActionBlock5
	ActionBlock6
	ActionCount // sentinel for array sizing
)

// Manager tracks which actions are held and which changed since the last
// PostUpdate. Event handlers and the frame loop may run on different
// goroutines.
type Manager struct {
	mu sync.RWMutex

	keys    map[glfw.Key][]Action
	buttons map[glfw.MouseButton][]Action

	held         [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager returns a Manager with the default viewer bindings.
func NewManager() *Manager {
	m := &Manager{
		keys:    make(map[glfw.Key][]Action),
		buttons: make(map[glfw.MouseButton][]Action),
	}
	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeySpace, ActionMoveUp)
	m.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	m.BindKey(glfw.KeyLeftControl, ActionBoost)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.KeyG, ActionToggleGreedy)
	m.BindKey(glfw.KeyF, ActionToggleFrustum)
	m.BindKey(glfw.KeyC, ActionToggleCombined)
	m.BindKey(glfw.KeyL, ActionToggleWireframe)
	m.BindKey(glfw.Key1, ActionBlock1)
	m.BindKey(glfw.Key2, ActionBlock2)
	m.BindKey(glfw.Key3, ActionBlock3)
	m.BindKey(glfw.Key4, ActionBlock4)
	m.BindKey(glfw.Key5, ActionBlock5)
	m.BindKey(glfw.Key6, ActionBlock6)

	m.BindMouseButton(glfw.MouseButtonLeft, ActionBreak)
	m.BindMouseButton(glfw.MouseButtonRight, ActionPlace)
	return m
}

// BindKey adds action to key. A key may drive several actions.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = append(m.keys[key], action)
}

// UnbindKey removes every binding of key.
func (m *Manager) UnbindKey(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
}

func (m *Manager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[button] = append(m.buttons[button], action)
}

// HandleKeyEvent records a key transition. Repeats count as held.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.keys[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent records a mouse button transition.
func (m *Manager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.buttons[button], action == glfw.Press)
}

// apply updates held state and edge flags. Callers hold mu.
func (m *Manager) apply(actions []Action, pressed bool) {
	for _, a := range actions {
		if pressed && !m.held[a] {
			m.justPressed[a] = true
		}
		if !pressed && m.held[a] {
			m.justReleased[a] = true
		}
		m.held[a] = pressed
	}
}

// Attach installs key and mouse button callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleMouseButtonEvent(button, action)
	})
}

// PostUpdate clears the edge flags. Call it once at the end of each frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
}

// IsActive reports whether action is held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.held[action]
}

// JustPressed reports whether action went down since the last PostUpdate.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether action went up since the last PostUpdate.
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

// Axis returns +1, -1 or 0 for a pair of opposing actions.
func (m *Manager) Axis(pos, neg Action) float32 {
	var v float32
	if m.IsActive(pos) {
		v++
	}
	if m.IsActive(neg) {
		v--
	}
	return v
}
