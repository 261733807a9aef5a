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

func newTestLayout(t *testing.T, rules []RawRule, opts Options) *Layout {
	t.Helper()
	l := &Layout{Rules: rules, Options: opts}
	processed, err := Preprocess(l)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	l.processed = processed
	return l
}

func TestEngineProcessKeyNoKeyboard(t *testing.T) {
	e := New()
	action, err := e.ProcessKey(VKeyA, 'a', 0)
	if !IsKind(err, NoKeyboard) {
		t.Fatalf("err = %v, want NoKeyboard", err)
	}
	if action.Kind != ActionNone {
		t.Errorf("action = %+v, want ActionNone", action)
	}
}

func TestEngineKaToMyanmar(t *testing.T) {
	// §8 scenario 1.
	l := newTestLayout(t, []RawRule{{LHS: stringOpcode("ka"), RHS: stringOpcode("က")}}, Options{})
	e := New()
	e.layout = l
	e.Reset()

	a1, err := e.ProcessKey(VKeyK, 'k', 0)
	if err != nil {
		t.Fatalf("ProcessKey(k): %v", err)
	}
	if a1.Kind != ActionInsert || a1.Text != "k" || e.GetComposing() != "k" {
		t.Fatalf("after 'k': %+v, composing=%q", a1, e.GetComposing())
	}

	a2, err := e.ProcessKey(VKeyA, 'a', 0)
	if err != nil {
		t.Fatalf("ProcessKey(a): %v", err)
	}
	if a2.Kind != ActionBackspaceDeleteAndInsert || a2.DeleteCount != 1 || a2.Text != "က" {
		t.Fatalf("after 'a': %+v", a2)
	}
	if e.GetComposing() != "က" {
		t.Fatalf("composing = %q, want က", e.GetComposing())
	}
}

func TestEnginePlainBackspaceUndoChain(t *testing.T) {
	// §8 scenario 2: smart_backspace off, three inserts then three
	// backspaces delete one scalar at a time.
	l := newTestLayout(t, nil, Options{SmartBackspace: false})
	e := New()
	e.layout = l
	e.Reset()

	for _, r := range "abc" {
		if _, err := e.ProcessKey(VKeyNone, r, 0); err != nil {
			t.Fatalf("ProcessKey(%q): %v", r, err)
		}
	}
	if e.GetComposing() != "abc" {
		t.Fatalf("composing = %q, want abc", e.GetComposing())
	}

	want := []string{"ab", "a", ""}
	for _, w := range want {
		a, err := e.ProcessKey(VKeyBack, 0, 0)
		if err != nil {
			t.Fatalf("ProcessKey(Back): %v", err)
		}
		if a.Kind != ActionBackspaceDelete || a.DeleteCount != 1 {
			t.Fatalf("backspace action = %+v, want single-scalar delete", a)
		}
		if e.GetComposing() != w {
			t.Fatalf("composing = %q, want %q", e.GetComposing(), w)
		}
	}
}

func TestEngineSmartBackspaceRestoresPreRuleSnapshot(t *testing.T) {
	// §8 scenario 3: smart_backspace on. Typing "ka" fires a rule turning
	// the buffer into a single rewritten character; backspace should
	// restore the pre-rule composing state ("k"), not merely delete one
	// scalar of the rule's output.
	l := newTestLayout(t, []RawRule{{LHS: stringOpcode("ka"), RHS: stringOpcode("က")}}, Options{SmartBackspace: true})
	e := New()
	e.layout = l
	e.Reset()

	if _, err := e.ProcessKey(VKeyK, 'k', 0); err != nil {
		t.Fatalf("ProcessKey(k): %v", err)
	}
	if _, err := e.ProcessKey(VKeyA, 'a', 0); err != nil {
		t.Fatalf("ProcessKey(a): %v", err)
	}
	if e.GetComposing() != "က" {
		t.Fatalf("composing = %q, want က", e.GetComposing())
	}

	a, err := e.ProcessKey(VKeyBack, 0, 0)
	if err != nil {
		t.Fatalf("ProcessKey(Back): %v", err)
	}
	if !a.IsProcessed {
		t.Error("smart backspace should mark the action processed")
	}
	if e.GetComposing() != "k" {
		t.Fatalf("composing after smart backspace = %q, want k (pre-rule snapshot)", e.GetComposing())
	}
}

func TestEngineEatUnusedSuppressesUnmatchedChars(t *testing.T) {
	l := newTestLayout(t, []RawRule{{LHS: stringOpcode("zz"), RHS: stringOpcode("Z")}}, Options{EatUnused: true})
	e := New()
	e.layout = l
	e.Reset()

	a, err := e.ProcessKey(VKeyQ, 'q', 0)
	if err != nil {
		t.Fatalf("ProcessKey(q): %v", err)
	}
	if a.Kind != ActionNone || !a.IsProcessed {
		t.Fatalf("got %+v, want ActionNone with IsProcessed=true", a)
	}
	if e.GetComposing() != "" {
		t.Fatalf("composing = %q, want empty (char eaten)", e.GetComposing())
	}
}

func TestEngineDefaultAppendWhenNoRuleMatches(t *testing.T) {
	l := newTestLayout(t, nil, Options{})
	e := New()
	e.layout = l
	e.Reset()

	a, err := e.ProcessKey(VKeyQ, 'q', 0)
	if err != nil {
		t.Fatalf("ProcessKey(q): %v", err)
	}
	if a.Kind != ActionInsert || a.Text != "q" || !a.IsProcessed {
		t.Fatalf("got %+v, want plain insert", a)
	}
}

func TestEngineResetClearsHistoryAndStates(t *testing.T) {
	l := newTestLayout(t, []RawRule{{LHS: switchOpcode(1), RHS: append(stringOpcode("x"), switchOpcode(2)...)}}, Options{SmartBackspace: true})
	e := New()
	e.layout = l
	e.Reset()
	e.activeStates[1] = true

	if _, err := e.ProcessKey(VKeyNone, 'q', 0); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if e.hist.len() == 0 {
		t.Fatal("expected a history snapshot to have been pushed")
	}

	e.Reset()
	if e.hist.len() != 0 {
		t.Errorf("hist.len() after Reset = %d, want 0", e.hist.len())
	}
	if len(e.activeStates) != 0 {
		t.Errorf("activeStates after Reset = %v, want empty", e.activeStates)
	}
	if e.GetComposing() != "" {
		t.Errorf("composing after Reset = %q, want empty", e.GetComposing())
	}
}

func TestEngineSetComposingClearsHistoryAndStates(t *testing.T) {
	l := newTestLayout(t, nil, Options{SmartBackspace: true})
	e := New()
	e.layout = l
	e.Reset()
	e.activeStates[3] = true
	e.hist.push("old", nil)

	if err := e.SetComposing("hello"); err != nil {
		t.Fatalf("SetComposing: %v", err)
	}
	if e.GetComposing() != "hello" {
		t.Errorf("composing = %q, want hello", e.GetComposing())
	}
	if len(e.activeStates) != 0 {
		t.Errorf("activeStates after SetComposing = %v, want empty", e.activeStates)
	}
	if e.hist.len() != 0 {
		t.Errorf("hist.len() after SetComposing = %d, want 0", e.hist.len())
	}

	if err := e.SetComposing("\xff\xfe"); err == nil {
		t.Error("SetComposing with invalid UTF-8 should fail")
	} else if !IsKind(err, Utf8Conversion) {
		t.Errorf("err kind = %v, want Utf8Conversion", err)
	}
}

func TestEngineTestProcessKeyDoesNotMutate(t *testing.T) {
	l := newTestLayout(t, []RawRule{{LHS: stringOpcode("ka"), RHS: stringOpcode("က")}}, Options{SmartBackspace: true})
	e := New()
	e.layout = l
	e.Reset()
	if _, err := e.ProcessKey(VKeyK, 'k', 0); err != nil {
		t.Fatalf("ProcessKey(k): %v", err)
	}

	before := e.GetComposing()
	beforeHistLen := e.hist.len()

	a, err := e.TestProcessKey(VKeyA, 'a', 0)
	if err != nil {
		t.Fatalf("TestProcessKey: %v", err)
	}
	if a.Kind != ActionBackspaceDeleteAndInsert {
		t.Fatalf("preview action = %+v, want the rule to have fired", a)
	}

	if e.GetComposing() != before {
		t.Errorf("TestProcessKey mutated composing: %q != %q", e.GetComposing(), before)
	}
	if e.hist.len() != beforeHistLen {
		t.Errorf("TestProcessKey mutated history length: %d != %d", e.hist.len(), beforeHistLen)
	}
}
