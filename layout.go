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

// Header carries the fixed fields of a KM2 file (§3). InfoCount is zero
// for files older than v1.4, which carry no metadata section at all.
type Header struct {
	Major      uint8
	Minor      uint8
	StringCount uint16
	InfoCount   uint16
	RuleCount   uint16
}

// Options is the layout's v1.5-shaped options view. Earlier minor versions
// are parsed into this same struct with the fields their format lacks
// filled in from the documented defaults (§4.1).
type Options struct {
	TrackCaps           bool
	SmartBackspace      bool
	EatUnused           bool
	USLayoutBased       bool
	TreatCtrlAltAsRAlt  bool
}

// RawRule is one (LHS, RHS) opcode-stream pair exactly as read from the
// rules section, before preprocessing (§3).
type RawRule struct {
	LHS []uint16
	RHS []uint16
}

// Layout is the immutable, in-memory form of a loaded KM2 file (§3). It is
// owned by exactly one Engine at a time (§3 "Lifecycles") and is read-only
// after Load returns.
type Layout struct {
	Header   Header
	Options  Options
	Strings  []string          // 1-based from the binary's point of view; Strings[0] backs index 1.
	Metadata map[string][]byte // 4-byte ASCII id -> raw payload.
	Rules    []RawRule

	// Rules, preprocessed once at load time (§4.3); the engine facade
	// never re-derives this on every key event.
	processed []ProcessedRule
}

// String returns the string-table entry for a 1-based index, or "" if the
// index is out of range. Out-of-range string references are a soft
// failure everywhere in this package (§7): they never abort a rule match
// or a load, they just produce an empty value.
func (l *Layout) String(index int) string {
	if index < 1 || index > len(l.Strings) {
		return ""
	}
	return l.Strings[index-1]
}

// MetadataText decodes a metadata entry as UTF-16LE text, per §3's "Text
// ids decode as UTF-16LE". Returns "", false if the id is absent.
func (l *Layout) MetadataText(id string) (string, bool) {
	raw, ok := l.Metadata[id]
	if !ok {
		return "", false
	}
	s, err := decodeUTF16LEBytes(raw)
	if err != nil {
		return "", false
	}
	return s, true
}

// MetadataBytes returns the raw payload for a metadata id (used for
// "icon", which is binary rather than UTF-16 text). The caller must not
// mutate the returned slice (§5 "The icon blob is returned by reference").
func (l *Layout) MetadataBytes(id string) ([]byte, bool) {
	raw, ok := l.Metadata[id]
	return raw, ok
}
