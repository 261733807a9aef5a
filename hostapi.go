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

// Package keymagic's hostapi.go mirrors the language-neutral operation
// list of §6 behind opaque handles, so a future cgo or WASM export layer
// has a single narrow surface to bind instead of reaching into Engine and
// Layout values directly. Nothing here does FFI; it is the handle-table
// shape the real bindings would wrap.
package keymagic

import "sync"

// Handle is an opaque reference to a live Engine (§6 "the engine exposes
// an opaque engine handle").
type Handle uint64

// LayoutHandle is an opaque reference to a Layout loaded for inspection
// only -- the km2_load/km2_get_* family lets a host preview a keyboard
// file's metadata without installing it into any Engine.
type LayoutHandle uint64

var (
	hostMu    sync.Mutex
	hostNext  Handle = 1
	hostTable        = map[Handle]*Engine{}

	layoutMu    sync.Mutex
	layoutNext  LayoutHandle = 1
	layoutTable              = map[LayoutHandle]*Layout{}
)

// HostNew allocates a fresh Engine and returns its handle (§6 "new").
func HostNew() Handle {
	hostMu.Lock()
	defer hostMu.Unlock()
	h := hostNext
	hostNext++
	hostTable[h] = New()
	return h
}

// HostFree releases the Engine behind h (§6 "free"). Freeing an unknown or
// already-freed handle is a no-op.
func HostFree(h Handle) {
	hostMu.Lock()
	defer hostMu.Unlock()
	delete(hostTable, h)
}

func hostEngine(h Handle) (*Engine, error) {
	hostMu.Lock()
	defer hostMu.Unlock()
	e, ok := hostTable[h]
	if !ok {
		return nil, newError(InvalidHandle, "engine handle %d is not live", h)
	}
	return e, nil
}

// HostLoadKeyboard installs the KM2 file at path into the Engine behind h
// (§6 "load_keyboard").
func HostLoadKeyboard(h Handle, path string) error {
	e, err := hostEngine(h)
	if err != nil {
		return err
	}
	return e.LoadFile(path)
}

// HostLoadKeyboardFromMemory installs KM2 bytes already in memory (§6
// "load_keyboard_from_memory").
func HostLoadKeyboardFromMemory(h Handle, data []byte) error {
	e, err := hostEngine(h)
	if err != nil {
		return err
	}
	return e.Load(data)
}

// ProcessKeyResult is the host-facing record §6's process_key operation
// returns: the three action fields plus the redisplayed composing text and
// the processed flag, flattened for a binding layer that can't return a Go
// struct across its boundary.
type ProcessKeyResult struct {
	ActionType    ActionKind
	Text          string
	DeleteCount   int
	ComposingText string
	IsProcessed   bool
}

// HostProcessKey runs one key event through the Engine behind h (§6
// "process_key").
func HostProcessKey(h Handle, vk VKey, char rune, mods Modifiers) (ProcessKeyResult, error) {
	e, err := hostEngine(h)
	if err != nil {
		return ProcessKeyResult{}, err
	}
	action, err := e.ProcessKey(vk, char, mods)
	return ProcessKeyResult{
		ActionType:    action.Kind,
		Text:          action.Text,
		DeleteCount:   action.DeleteCount,
		ComposingText: action.Composing,
		IsProcessed:   action.IsProcessed,
	}, err
}

// HostReset clears the Engine behind h (§6 "reset").
func HostReset(h Handle) error {
	e, err := hostEngine(h)
	if err != nil {
		return err
	}
	e.Reset()
	return nil
}

// HostGetComposition reads the Engine's composing buffer (§6
// "get_composition").
func HostGetComposition(h Handle) (string, error) {
	e, err := hostEngine(h)
	if err != nil {
		return "", err
	}
	return e.GetComposing(), nil
}

// HostSetComposition overwrites the Engine's composing buffer (§6
// "set_composition").
func HostSetComposition(h Handle, text string) error {
	e, err := hostEngine(h)
	if err != nil {
		return err
	}
	return e.SetComposing(text)
}

// HostKM2Load parses the KM2 file at path for inspection and returns a
// LayoutHandle the km2_get_* family can query (§6 "km2_load"). It installs
// nothing into any Engine.
func HostKM2Load(path string) (LayoutHandle, error) {
	l, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	layoutMu.Lock()
	defer layoutMu.Unlock()
	h := layoutNext
	layoutNext++
	layoutTable[h] = l
	return h, nil
}

// HostKM2Free releases a LayoutHandle from HostKM2Load.
func HostKM2Free(h LayoutHandle) {
	layoutMu.Lock()
	defer layoutMu.Unlock()
	delete(layoutTable, h)
}

func hostLayout(h LayoutHandle) (*Layout, error) {
	layoutMu.Lock()
	defer layoutMu.Unlock()
	l, ok := layoutTable[h]
	if !ok {
		return nil, newError(InvalidHandle, "layout handle %d is not live", h)
	}
	return l, nil
}

// HostKM2GetName, HostKM2GetDescription, HostKM2GetHotkey, and
// HostKM2GetIconData read one metadata field from a previewed layout (§6
// "km2_get_{name,description,hotkey,icon_data}").
func HostKM2GetName(h LayoutHandle) (string, error) {
	l, err := hostLayout(h)
	if err != nil {
		return "", err
	}
	s, _ := l.Name()
	return s, nil
}

func HostKM2GetDescription(h LayoutHandle) (string, error) {
	l, err := hostLayout(h)
	if err != nil {
		return "", err
	}
	s, _ := l.Description()
	return s, nil
}

func HostKM2GetHotkey(h LayoutHandle) (string, error) {
	l, err := hostLayout(h)
	if err != nil {
		return "", err
	}
	s, _ := l.Hotkey()
	return s, nil
}

func HostKM2GetIconData(h LayoutHandle) ([]byte, error) {
	l, err := hostLayout(h)
	if err != nil {
		return nil, err
	}
	b, _ := l.IconData()
	return b, nil
}

// HostParseHotkey exposes ParseHotkey under the host-API naming (§6
// "parse_hotkey").
func HostParseHotkey(s string) (Hotkey, error) {
	return ParseHotkey(s)
}

// HostFreeString exists for API-shape parity with §6's "Strings returned
// to the host ... are freed via a companion free_string entry point". Go
// strings need no such release; this is a no-op kept so a future cgo/WASM
// binding layer has a symbol to export without changing this surface.
func HostFreeString(string) {}
