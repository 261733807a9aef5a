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

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Hotkey is the decoded form of a metadata `htky` string (§6).
type Hotkey struct {
	VK    VKey
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

var hotkeyUpper = cases.Upper(language.Und)

// ParseHotkey parses a hotkey string in the grammar of §6: tokens
// separated by "+" or whitespace, case-insensitive, at most one
// non-modifier key token. It fails on empty input, a trailing "+",
// modifier-only input, an unrecognised token, or more than one key token.
func ParseHotkey(s string) (Hotkey, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Hotkey{}, newError(InvalidParameter, "empty hotkey")
	}
	if strings.HasSuffix(trimmed, "+") {
		return Hotkey{}, newError(InvalidParameter, "hotkey %q ends with a trailing +", s)
	}

	tokens := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '+' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return Hotkey{}, newError(InvalidParameter, "empty hotkey")
	}

	var hk Hotkey
	keyTokens := 0
	for _, raw := range tokens {
		tok := hotkeyUpper.String(raw)
		switch tok {
		case "CTRL":
			hk.Ctrl = true
			continue
		case "ALT":
			hk.Alt = true
			continue
		case "SHIFT":
			hk.Shift = true
			continue
		case "META", "CMD", "WIN":
			hk.Meta = true
			continue
		}

		vk, ok := hotkeyKeyToken(tok)
		if !ok {
			return Hotkey{}, newError(InvalidParameter, "unknown hotkey token %q", raw)
		}
		keyTokens++
		if keyTokens > 1 {
			return Hotkey{}, newError(InvalidParameter, "hotkey %q names more than one key", s)
		}
		hk.VK = vk
	}

	if keyTokens == 0 {
		return Hotkey{}, newError(InvalidParameter, "hotkey %q names no key, only modifiers", s)
	}

	return hk, nil
}

// hotkeyKeyToken maps one already-uppercased, non-modifier token to its
// VKey, per §6's key-token list.
func hotkeyKeyToken(tok string) (VKey, bool) {
	switch tok {
	case "SPACE":
		return VKeySpace, true
	case "ENTER", "RETURN":
		return VKeyReturn, true
	case "TAB":
		return VKeyTab, true
	case "ESC", "ESCAPE":
		return VKeyEscape, true
	case "BACK", "BACKSPACE":
		return VKeyBack, true
	case "DELETE":
		return VKeyDelete, true
	case "HOME":
		return VKeyHome, true
	case "END":
		return VKeyEnd, true
	case "LEFT":
		return VKeyLeft, true
	case "UP":
		return VKeyUp, true
	case "RIGHT":
		return VKeyRight, true
	case "DOWN":
		return VKeyDown, true
	case "=":
		return VKeyOEMPlus, true
	case "-":
		return VKeyOEMMinus, true
	case "[":
		return VKeyOEM4, true
	case "]":
		return VKeyOEM6, true
	case "'":
		return VKeyOEM7, true
	}

	if len(tok) == 1 {
		r := rune(tok[0])
		switch {
		case r >= 'A' && r <= 'Z':
			return VKeyA + VKey(r-'A'), true
		case r >= '0' && r <= '9':
			return VKey0 + VKey(r-'0'), true
		}
	}

	if len(tok) >= 2 && tok[0] == 'F' {
		if n, err := strconv.Atoi(tok[1:]); err == nil && n >= 1 && n <= 12 {
			return VKeyF1 + VKey(n-1), true
		}
	}

	return VKeyNone, false
}
