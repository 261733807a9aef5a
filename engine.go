// Copyright 2024 The KeyMagic Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keymagic

import "unicode/utf8"

// Engine is the public facade of §4.6: it owns at most one loaded Layout,
// the composing buffer, the active-state set, and the smart-backspace
// history. It is single-threaded per instance (§5); a host sharing one
// Engine across goroutines must serialise calls itself.
type Engine struct {
	layout       *Layout
	composing    string
	activeStates map[int]bool
	hist         history
}

// New constructs an empty Engine with no layout loaded.
func New() *Engine {
	return &Engine{activeStates: make(map[int]bool)}
}

// Load parses data as a KM2 layout and installs it, calling Reset on
// success. A failed parse leaves any previously loaded layout untouched.
func (e *Engine) Load(data []byte) error {
	l, err := Load(data)
	if err != nil {
		return err
	}
	e.layout = l
	e.Reset()
	return nil
}

// LoadFile reads path and installs it the way Load does.
func (e *Engine) LoadFile(path string) error {
	l, err := LoadFile(path)
	if err != nil {
		return err
	}
	e.layout = l
	e.Reset()
	return nil
}

// Unload drops the current layout, if any, and resets engine state.
func (e *Engine) Unload() {
	e.layout = nil
	e.Reset()
}

// Reset clears the composing buffer, active states, smart-backspace
// history, and (implicitly, since it is never carried between calls) the
// recursion counter.
func (e *Engine) Reset() {
	e.composing = ""
	e.activeStates = make(map[int]bool)
	e.hist = history{}
}

// Layout returns the currently loaded layout, or nil if none is loaded.
func (e *Engine) Layout() *Layout {
	return e.layout
}

// GetComposing returns the engine's composing buffer as UTF-8.
func (e *Engine) GetComposing() string {
	return e.composing
}

// SetComposing replaces the composing buffer and clears active states and
// smart-backspace history (§4.5 "the history is cleared on reset and on
// external set_composing").
func (e *Engine) SetComposing(text string) error {
	if !utf8.ValidString(text) {
		return newError(Utf8Conversion, "SetComposing: invalid UTF-8")
	}
	e.composing = text
	e.activeStates = make(map[int]bool)
	e.hist.clear()
	return nil
}

// ProcessKey is the main entry point (§4.6): it runs one key event through
// Snapshot -> MatchPhase -> ApplyRule/AppendOrEat -> RecurseOnText ->
// EmitAction, mutates engine state, and returns the resulting Action. It
// never panics; a call with no layout loaded returns ActionNone and a
// NoKeyboard error, per §7.
func (e *Engine) ProcessKey(vk VKey, char rune, mods Modifiers) (Action, error) {
	if e.layout == nil {
		return Action{Kind: ActionNone, Composing: e.composing}, wrapError(NoKeyboard, ErrNoKeyboard)
	}

	old := e.composing
	isBackspace := vk == VKeyBack
	hasChar := char != 0

	if e.layout.Options.SmartBackspace && !isBackspace {
		e.hist.push(old, e.activeStates)
	}

	extended := old
	if hasChar {
		extended = old + string(char)
	}

	newComposing, emitted, matched := Rewrite(e.layout, e.layout.processed, extended, vk, mods, e.activeStates)

	var action Action
	switch {
	case matched:
		action = deriveAction(old, newComposing)
		action.IsProcessed = true
		e.composing = newComposing

	case isBackspace:
		action = e.backspace(old)

	case hasChar && e.layout.Options.EatUnused:
		// §4.6: eaten keys still count as processed, distinguishing
		// "engine consumed this" from "engine had nothing to do with it".
		action = Action{Kind: ActionNone, Composing: old, IsProcessed: true}

	case hasChar:
		newComposing = old + string(char)
		action = deriveAction(old, newComposing)
		action.IsProcessed = true
		e.composing = newComposing

	default:
		action = Action{Kind: ActionNone, Composing: old}
	}

	e.activeStates = emitted
	action.Composing = e.composing
	return action, nil
}

// backspace implements §4.5's smart-backspace behaviour for a Back key
// event that no rule claimed: restore the most recent history snapshot
// when smart_backspace is on and history is non-empty, otherwise delete
// the trailing Unicode scalar value of the buffer.
func (e *Engine) backspace(old string) Action {
	if e.layout.Options.SmartBackspace {
		if snap, ok := e.hist.pop(); ok {
			e.composing = snap.composing
			e.activeStates = snap.activeStates
			action := deriveAction(old, snap.composing)
			action.IsProcessed = true
			return action
		}
	}

	trimmed := deleteLastScalar(old)
	e.composing = trimmed
	action := deriveAction(old, trimmed)
	action.IsProcessed = true
	return action
}

// TestProcessKey returns the Action that ProcessKey would produce for the
// same inputs, without mutating engine state (§4.6, used for previews).
func (e *Engine) TestProcessKey(vk VKey, char rune, mods Modifiers) (Action, error) {
	if e.layout == nil {
		return Action{Kind: ActionNone, Composing: e.composing}, wrapError(NoKeyboard, ErrNoKeyboard)
	}

	preview := *e
	preview.activeStates = cloneStates(e.activeStates)
	preview.hist = history{entries: append([]snapshot{}, e.hist.entries...)}

	return preview.ProcessKey(vk, char, mods)
}

// Name, Description, Hotkey, FontFamily, and IconData surface the loaded
// layout's metadata (§4.6 "metadata accessors"). They report ok=false if
// no layout is loaded or the id is absent.
func (e *Engine) Name() (string, bool) {
	if e.layout == nil {
		return "", false
	}
	return e.layout.Name()
}

func (e *Engine) Description() (string, bool) {
	if e.layout == nil {
		return "", false
	}
	return e.layout.Description()
}

func (e *Engine) HotkeyString() (string, bool) {
	if e.layout == nil {
		return "", false
	}
	return e.layout.Hotkey()
}

func (e *Engine) FontFamily() (string, bool) {
	if e.layout == nil {
		return "", false
	}
	return e.layout.FontFamily()
}

func (e *Engine) IconData() ([]byte, bool) {
	if e.layout == nil {
		return nil, false
	}
	return e.layout.IconData()
}

// Options returns the loaded layout's option flags, or the zero value if
// no layout is loaded (§4.6 "Layout-option accessors").
func (e *Engine) Options() Options {
	if e.layout == nil {
		return Options{}
	}
	return e.layout.Options
}
