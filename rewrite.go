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
	"strings"
	"unicode/utf8"
)

// maxRecursionDepth bounds the text-only rewrite chain a single key event
// may trigger (§4.5, §8 "recursion depth never exceeds 100").
const maxRecursionDepth = 100

// Rewrite runs one key event's worth of rule application against extended
// (the composing buffer already extended by any incoming character) and
// then chases the recursive, text-only rewrite chain §4.5 describes.
//
// activeStatesIn is visible to every match attempt this call makes,
// including its recursive steps, but it does not outlive the call: per
// §9's resolution of the state-persistence ambiguity, a state switched on
// by an earlier key event is good for exactly one following event, not
// indefinitely. So the states map this returns holds only the SWITCH
// operands actually emitted during THIS call, for the caller to install as
// next event's active_states -- carried-in states that went unconsumed
// are dropped, not re-armed.
func Rewrite(l *Layout, rules []ProcessedRule, extended string, vk VKey, mods Modifiers, activeStatesIn map[int]bool) (result string, emitted map[int]bool, matched bool) {
	live := cloneStates(activeStatesIn)
	emitted = make(map[int]bool)

	rule, caps, ok := findMatch(l, rules, stringToCodeUnits(extended), matchInput{
		VK: vk, Mods: mods, ActiveStates: live, AllowKeySegments: true,
	})
	if !ok {
		return extended, emitted, false
	}

	buf := applyRule(l, rule, caps, extended, live, emitted)

	for depth := 0; depth < maxRecursionDepth; depth++ {
		if buf == "" || isSinglePrintableASCII(buf) {
			break
		}
		rule, caps, ok = findMatch(l, rules, stringToCodeUnits(buf), matchInput{
			ActiveStates: live, AllowKeySegments: false,
		})
		if !ok {
			break
		}
		buf = applyRule(l, rule, caps, buf, live, emitted)
	}

	return buf, emitted, true
}

// findMatch tries rules in their preprocessed priority order and returns
// the first that matches (§4.4 "the matcher returns the first success").
func findMatch(l *Layout, rules []ProcessedRule, codeUnits []uint16, in matchInput) (ProcessedRule, captureSet, bool) {
	for _, rule := range rules {
		if caps, ok := matchRule(l, rule, codeUnits, in); ok {
			return rule, caps, true
		}
	}
	return ProcessedRule{}, nil, false
}

// applyRule replaces rule's matched suffix of buf with its evaluated RHS
// and folds any SWITCH operands into both live (so a later step in the
// same recursive chain can see them) and emitted (so the caller can carry
// them into the next key event) (§4.5 "Suffix-only substitution").
func applyRule(l *Layout, rule ProcessedRule, caps captureSet, buf string, live, emitted map[int]bool) string {
	need := 0
	for _, seg := range rule.LHS {
		need += seg.consumedLength(l)
	}
	units := stringToCodeUnits(buf)
	prefix := units[:len(units)-need]

	rhsText, switches := evalRHS(l, rule, caps)
	for _, s := range switches {
		live[s] = true
		emitted[s] = true
	}

	return codeUnitsToString(prefix) + rhsText
}

// evalRHS evaluates a rule's RHS ops into replacement text plus the list
// of states it switches on, per §4.5's opcode table.
func evalRHS(l *Layout, rule ProcessedRule, caps captureSet) (string, []int) {
	var b strings.Builder
	var switches []int

	for _, op := range rule.RHS {
		switch op.Kind {
		case rhsString:
			b.WriteString(op.Text)

		case rhsVariable:
			b.WriteString(l.String(op.VarID))

		case rhsVariableIndexed:
			if c, ok := caps.get(op.RefSegment); ok {
				units := stringToCodeUnits(l.String(op.VarID))
				if c.Position >= 0 && c.Position < len(units) {
					b.WriteString(codeUnitsToString(units[c.Position : c.Position+1]))
				}
			}

		case rhsReference:
			if c, ok := caps.get(op.RefSegment); ok {
				b.WriteString(c.Value)
			}

		case rhsNull:
			// Produces no output text; used for a single-opcode RHS that
			// eats the match without replacing it with anything.

		case rhsSwitch:
			switches = append(switches, op.StateID)
		}
	}

	return b.String(), switches
}

func cloneStates(in map[int]bool) map[int]bool {
	out := make(map[int]bool, len(in))
	for k, v := range in {
		if v {
			out[k] = true
		}
	}
	return out
}

// isSinglePrintableASCII reports whether s is exactly one printable ASCII
// code point, the recursion stop condition in §4.5.
func isSinglePrintableASCII(s string) bool {
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) {
		return false
	}
	return r >= 0x21 && r <= 0x7E
}
