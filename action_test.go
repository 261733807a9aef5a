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

func TestDeriveActionKinds(t *testing.T) {
	cases := []struct {
		old, composing string
		want           ActionKind
		deleteCount    int
		text           string
	}{
		{"", "", ActionNone, 0, ""},
		{"", "k", ActionInsert, 0, "k"},
		{"k", "ka", ActionInsert, 0, "a"},
		{"hello world", "hello universe", ActionBackspaceDeleteAndInsert, 5, "universe"},
		{"hello", "hell", ActionBackspaceDelete, 1, ""},
	}
	for _, c := range cases {
		a := deriveAction(c.old, c.composing)
		if a.Kind != c.want || a.DeleteCount != c.deleteCount || a.Text != c.text {
			t.Errorf("deriveAction(%q, %q) = %+v, want Kind=%v DeleteCount=%d Text=%q",
				c.old, c.composing, a, c.want, c.deleteCount, c.text)
		}
		if a.Composing != c.composing {
			t.Errorf("deriveAction(%q, %q).Composing = %q, want %q", c.old, c.composing, a.Composing, c.composing)
		}
	}
}

func TestDeriveActionKaToMyanmar(t *testing.T) {
	// §8 scenario 1: "ka" -> U+1000.
	a := deriveAction("k", "က")
	if a.Kind != ActionBackspaceDeleteAndInsert || a.DeleteCount != 1 || a.Text != "က" {
		t.Errorf("got %+v", a)
	}
}
