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

// matchInput bundles the per-key-event facts a rule's VirtualKey and State
// segments test against (§4.4). During a text-only recursion step (§4.5)
// there is no new key event, so the caller leaves VK at VKeyNone and
// AllowKeySegments false; a rule whose LHS mentions a virtual key or a
// state never matches in that mode.
type matchInput struct {
	VK               VKey
	Mods             Modifiers
	ActiveStates     map[int]bool
	AllowKeySegments bool
}

// matchRule walks rule's LHS right-to-left against the trailing code units
// of codeUnits, exactly as §4.4 describes: the matcher never scans the
// buffer forward, it only ever asks "does the tail look like this rule".
// It returns the captures recorded by Any/AnyOfVariable/NotAnyOfVariable/
// Variable/String segments and true on success, or ok=false on any
// mismatch.
func matchRule(l *Layout, rule ProcessedRule, codeUnits []uint16, in matchInput) (captureSet, bool) {
	if rule.malformed {
		return nil, false
	}

	if !in.AllowKeySegments {
		for _, seg := range rule.LHS {
			if seg.Kind == segVirtualKey || seg.Kind == segState {
				return nil, false
			}
		}
	}

	need := 0
	for _, seg := range rule.LHS {
		need += seg.consumedLength(l)
	}
	if need > len(codeUnits) {
		return nil, false
	}
	tail := codeUnits[len(codeUnits)-need:]

	captures := make(captureSet, len(rule.LHS))
	cursor := len(tail)

	for i := len(rule.LHS) - 1; i >= 0; i-- {
		seg := rule.LHS[i]
		segNum := i + 1

		switch seg.Kind {
		case segState:
			if !in.ActiveStates[seg.StateID] {
				return nil, false
			}

		case segVirtualKey:
			if !chordMatches(seg.Chord, in.VK, in.Mods) {
				return nil, false
			}

		case segAny:
			cursor--
			ch := tail[cursor]
			if !isPrintableASCIICodeUnit(ch) {
				return nil, false
			}
			captures[segNum] = Capture{Value: string(rune(ch)), Position: -1, SegmentIndex: segNum}

		case segAnyOfVariable:
			cursor--
			ch := tail[cursor]
			pos := indexOfCodeUnit(l.String(seg.VarID), ch)
			if pos < 0 {
				return nil, false
			}
			captures[segNum] = Capture{Value: string(rune(ch)), Position: pos, SegmentIndex: segNum}

		case segNotAnyOfVariable:
			cursor--
			ch := tail[cursor]
			if indexOfCodeUnit(l.String(seg.VarID), ch) >= 0 {
				return nil, false
			}
			captures[segNum] = Capture{Value: string(rune(ch)), Position: -1, SegmentIndex: segNum}

		case segVariable:
			want := l.String(seg.VarID)
			n := utf16Len(want)
			cursor -= n
			if cursor < 0 || !equalCodeUnits(tail[cursor:cursor+n], stringToCodeUnits(want)) {
				return nil, false
			}
			captures[segNum] = Capture{Value: want, Position: -1, SegmentIndex: segNum}

		case segString:
			n := utf16Len(seg.Literal)
			cursor -= n
			if cursor < 0 || !equalCodeUnits(tail[cursor:cursor+n], stringToCodeUnits(seg.Literal)) {
				return nil, false
			}
			captures[segNum] = Capture{Value: seg.Literal, Position: -1, SegmentIndex: segNum}
		}
	}

	return captures, true
}

// chordMatches reports whether an AND/PREDEFINED chord is satisfied by a
// single key event. The opcode table (§3) gives PREDEFINED a virtual-key
// operand with no separate encoding for "this entry names a modifier
// requirement" versus "this entry names the non-modifier key that must
// have been pressed", so a chord entry that is itself one of the modifier
// VKeys is read as a modifier-state requirement, and any other entry is
// read as the event's own virtual key.
func chordMatches(chord []VKey, vk VKey, mods Modifiers) bool {
	for _, k := range chord {
		switch k {
		case VKeyShift, VKeyLShift, VKeyRShift:
			if !mods.Has(ModShift) {
				return false
			}
		case VKeyControl, VKeyLControl, VKeyRControl:
			if !mods.Has(ModCtrl) {
				return false
			}
		case VKeyMenu, VKeyLMenu, VKeyRMenu:
			if !mods.Has(ModAlt) {
				return false
			}
		case VKeyCapital:
			if !mods.Has(ModCaps) {
				return false
			}
		default:
			if vk != k {
				return false
			}
		}
	}
	return true
}

func isPrintableASCIICodeUnit(u uint16) bool {
	return u >= 0x21 && u <= 0x7E
}

func indexOfCodeUnit(s string, u uint16) int {
	units := stringToCodeUnits(s)
	for i, v := range units {
		if v == u {
			return i
		}
	}
	return -1
}

func equalCodeUnits(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
