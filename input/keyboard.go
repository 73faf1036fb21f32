package input

// Keyboard tracks which keys are held this frame and which were held last
// frame. Events are ignored while the tracker is disabled.
type Keyboard struct {
	enabled  bool
	current  [KeyLast + 1]bool
	previous [KeyLast + 1]bool
}

// Enable samples the live key state from src and starts accepting events.
func (k *Keyboard) Enable(src StateSource) {
	k.enabled = true
	for key := KeySpace; key <= KeyLast; key++ {
		k.current[key] = src.Key(key) == Press
	}
	k.previous = k.current
}

// Disable stops accepting events and forgets every held key.
func (k *Keyboard) Disable() {
	k.enabled = false
	k.current = [KeyLast + 1]bool{}
	k.previous = [KeyLast + 1]bool{}
}

// IsEnabled reports whether key events are being recorded.
func (k *Keyboard) IsEnabled() bool {
	return k.enabled
}

// SetEnabled enables or disables the tracker. Nothing happens when the state
// does not change, so calling it every frame keeps the held keys.
func (k *Keyboard) SetEnabled(enabled bool, src StateSource) {
	if k.enabled == enabled {
		return
	}
	if enabled {
		k.Enable(src)
	} else {
		k.Disable()
	}
}

// KeyEvent records a key press or release. It is ignored while disabled.
func (k *Keyboard) KeyEvent(key Key, scancode int, action Action, mods ModifierKey) {
	if !k.enabled || !validKey(key) {
		return
	}
	switch action {
	case Press:
		k.current[key] = true
	case Release:
		k.current[key] = false
	}
}

// Update advances the tracker to the next frame.
func (k *Keyboard) Update() {
	k.previous = k.current
}

// IsPressed reports whether key is down this frame.
func (k *Keyboard) IsPressed(key Key) bool {
	return validKey(key) && k.current[key]
}

// JustPressed reports whether key went down since the last Update.
func (k *Keyboard) JustPressed(key Key) bool {
	return validKey(key) && k.current[key] && !k.previous[key]
}

// JustReleased reports whether key went up since the last Update.
func (k *Keyboard) JustReleased(key Key) bool {
	return validKey(key) && !k.current[key] && k.previous[key]
}

func validKey(key Key) bool {
	return key >= 0 && key <= KeyLast
}
