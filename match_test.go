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

import "testing"

func mustSegment(t *testing.T, stream []uint16) []Segment {
	t.Helper()
	segs, ok := segmentLHS(stream)
	if !ok {
		t.Fatalf("segmentLHS(%v) failed", stream)
	}
	return segs
}

func TestMatchRuleString(t *testing.T) {
	l := &Layout{}
	rule := ProcessedRule{LHS: mustSegment(t, stringOpcode("ka"))}

	caps, ok := matchRule(l, rule, stringToCodeUnits("xka"), matchInput{AllowKeySegments: true})
	if !ok {
		t.Fatal("expected match")
	}
	if caps[1].Value != "ka" {
		t.Errorf("capture = %+v", caps[1])
	}

	if _, ok := matchRule(l, rule, stringToCodeUnits("xk"), matchInput{AllowKeySegments: true}); ok {
		t.Error("short buffer should not match")
	}
}

func TestMatchRuleAny(t *testing.T) {
	l := &Layout{}
	rule := ProcessedRule{LHS: mustSegment(t, []uint16{uint16(opAny)})}

	caps, ok := matchRule(l, rule, stringToCodeUnits("x"), matchInput{AllowKeySegments: true})
	if !ok || caps[1].Value != "x" {
		t.Fatalf("got %+v, %v", caps, ok)
	}

	if _, ok := matchRule(l, rule, stringToCodeUnits(" "), matchInput{AllowKeySegments: true}); ok {
		t.Error("space is not printable ASCII !..~, should not match Any")
	}
	if _, ok := matchRule(l, rule, stringToCodeUnits("က"), matchInput{AllowKeySegments: true}); ok {
		t.Error("non-ASCII should not match Any")
	}
}

func TestMatchRuleAnyOfVariable(t *testing.T) {
	l := &Layout{Strings: []string{"ကခဂဃ"}}
	rule := ProcessedRule{LHS: mustSegment(t, anyOfVariableOpcode(1))}

	caps, ok := matchRule(l, rule, stringToCodeUnits("ခ"), matchInput{AllowKeySegments: true})
	if !ok {
		t.Fatal("expected match")
	}
	if caps[1].Value != "ခ" || caps[1].Position != 1 {
		t.Errorf("capture = %+v, want value ခ position 1", caps[1])
	}

	if _, ok := matchRule(l, rule, stringToCodeUnits("x"), matchInput{AllowKeySegments: true}); ok {
		t.Error("char outside variable should not match AnyOfVariable")
	}
}

func TestMatchRuleNotAnyOfVariable(t *testing.T) {
	l := &Layout{Strings: []string{"ကခဂဃ"}}
	segs, ok := segmentLHS([]uint16{uint16(opVariable), 1, uint16(opModifier), uint16(opNotAnyOf)})
	if !ok {
		t.Fatal("segmentLHS failed")
	}
	rule := ProcessedRule{LHS: segs}

	if _, ok := matchRule(l, rule, stringToCodeUnits("ခ"), matchInput{AllowKeySegments: true}); ok {
		t.Error("char in variable should not match NotAnyOfVariable")
	}
	caps, ok := matchRule(l, rule, stringToCodeUnits("x"), matchInput{AllowKeySegments: true})
	if !ok || caps[1].Value != "x" {
		t.Fatalf("got %+v, %v", caps, ok)
	}
}

func TestMatchRuleVirtualKeyChord(t *testing.T) {
	l := &Layout{}
	rule := ProcessedRule{LHS: mustSegment(t, andOpcode(VKeyControl, VKeyA))}

	in := matchInput{VK: VKeyA, Mods: ModCtrl, AllowKeySegments: true}
	if _, ok := matchRule(l, rule, nil, in); !ok {
		t.Error("Ctrl+A chord should match when Ctrl held and vk=A")
	}

	in = matchInput{VK: VKeyA, Mods: 0, AllowKeySegments: true}
	if _, ok := matchRule(l, rule, nil, in); ok {
		t.Error("chord should not match without Ctrl held")
	}

	in = matchInput{VK: VKeyB, Mods: ModCtrl, AllowKeySegments: true}
	if _, ok := matchRule(l, rule, nil, in); ok {
		t.Error("chord should not match a different key")
	}
}

func TestMatchRuleState(t *testing.T) {
	l := &Layout{}
	rule := ProcessedRule{LHS: mustSegment(t, switchOpcode(2))}

	if _, ok := matchRule(l, rule, nil, matchInput{AllowKeySegments: true, ActiveStates: map[int]bool{2: true}}); !ok {
		t.Error("State should match when the id is active")
	}
	if _, ok := matchRule(l, rule, nil, matchInput{AllowKeySegments: true, ActiveStates: map[int]bool{3: true}}); ok {
		t.Error("State should not match a different active id")
	}
}

func TestMatchRuleRejectsKeySegmentsDuringRecursion(t *testing.T) {
	l := &Layout{}
	vkRule := ProcessedRule{LHS: mustSegment(t, predefinedOpcode(VKeyA))}
	if _, ok := matchRule(l, vkRule, nil, matchInput{AllowKeySegments: false}); ok {
		t.Error("VirtualKey segment should never match during text-only recursion")
	}

	stateRule := ProcessedRule{LHS: mustSegment(t, switchOpcode(1))}
	if _, ok := matchRule(l, stateRule, nil, matchInput{AllowKeySegments: false, ActiveStates: map[int]bool{1: true}}); ok {
		t.Error("State segment should never match during text-only recursion")
	}
}

func TestMatchRuleMalformedNeverMatches(t *testing.T) {
	l := &Layout{}
	rule := ProcessedRule{malformed: true, LHS: mustSegment(t, stringOpcode("a"))}
	if _, ok := matchRule(l, rule, stringToCodeUnits("a"), matchInput{AllowKeySegments: true}); ok {
		t.Error("malformed rule should never match")
	}
}

func TestMatchRuleRightToLeftOrder(t *testing.T) {
	// "orld" following an AND(Ctrl, W) chord: the chord is a zero-length
	// segment that must still be satisfied even though it sits before a
	// text segment in source order.
	l := &Layout{}
	stream := append(andOpcode(VKeyControl, VKeyW), stringOpcode("orld")...)
	rule := ProcessedRule{LHS: mustSegment(t, stream)}

	in := matchInput{VK: VKeyW, Mods: ModCtrl, AllowKeySegments: true}
	caps, ok := matchRule(l, rule, stringToCodeUnits("hello orld"), in)
	if !ok {
		t.Fatal("expected match")
	}
	if caps[2].Value != "orld" {
		t.Errorf("text capture = %+v", caps[2])
	}
}
