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

// ActionKind discriminates the closed set of edit actions a host must
// apply to its surrounding document (§4.5, §6).
type ActionKind int

const (
	// ActionNone means nothing changed; the host does nothing.
	ActionNone ActionKind = iota
	// ActionInsert means insert Text at the cursor; nothing is deleted.
	ActionInsert
	// ActionBackspaceDelete means delete DeleteCount trailing code
	// points; nothing is inserted.
	ActionBackspaceDelete
	// ActionBackspaceDeleteAndInsert means delete DeleteCount trailing
	// code points, then insert Text.
	ActionBackspaceDeleteAndInsert
)

// Action is what ProcessKey (and TestProcessKey) return: a description of
// how the host should mutate the text surrounding its cursor, plus the
// engine's full composing buffer for the host to redisplay (§4.5, §6).
type Action struct {
	Kind         ActionKind
	Text         string // utf-8; insert Text, if Kind requires an insert.
	DeleteCount  int    // code points (runes) to delete, if Kind requires a delete.
	Composing    string // the engine's composing buffer after this key event.
	IsProcessed  bool   // true iff a rule matched, a character was appended, or the key was eaten.
}

// deriveAction computes the Action that transforms old into composing,
// following §4.5's "Action derivation": find the longest common prefix,
// delete the remainder of old, insert the remainder of composing.
func deriveAction(old, composing string) Action {
	prefixLen := commonPrefixLen(old, composing)
	deletedText := old[prefixLen:]
	insertedText := composing[prefixLen:]

	deleteCount := utf8.RuneCountInString(deletedText)

	var a Action
	switch {
	case deleteCount == 0 && insertedText == "":
		a.Kind = ActionNone
	case deleteCount == 0:
		a.Kind = ActionInsert
		a.Text = insertedText
	case insertedText == "":
		a.Kind = ActionBackspaceDelete
		a.DeleteCount = deleteCount
	default:
		a.Kind = ActionBackspaceDeleteAndInsert
		a.DeleteCount = deleteCount
		a.Text = insertedText
	}
	a.Composing = composing
	return a
}
