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
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// utf16LEDecoder decodes raw little-endian UTF-16 bytes to UTF-8. KM2
// metadata text blobs (§3, "Text ids decode as UTF-16LE") are exactly this
// shape, so we reach for the same x/text/encoding bridge the teacher uses
// to decode terminal charsets, rather than hand-rolling a byte walker.
var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// decodeUTF16LEBytes decodes a raw little-endian UTF-16 byte blob (as found
// in KM2 metadata payloads) into a UTF-8 string.
func decodeUTF16LEBytes(b []byte) (string, error) {
	out, err := utf16LEDecoder.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// codeUnitsToString converts a slice of UTF-16 code units (as read directly
// from a KM2 string-table entry or opcode STRING operand) into a Go string.
func codeUnitsToString(units []uint16) string {
	return string(utf16.Decode(units))
}

// stringToCodeUnits converts a Go string into its UTF-16 code units. This
// is the inverse of codeUnitsToString, used by tests and whenever the
// matcher needs to compare a literal against a slice of the composing
// buffer in code-unit space.
func stringToCodeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// utf16Len returns the number of UTF-16 code units s would occupy -- the
// "length" the spec means everywhere it talks about code-unit arithmetic
// (§3, §4.4, §9), not the byte length and not the rune count.
func utf16Len(s string) int {
	return len(stringToCodeUnits(s))
}

// leReader is a small cursor over a little-endian byte slice, used by the
// KM2 loader to walk header fields, string lengths, and opcode streams. No
// pack library offers a better fit for this: KM2's framing is bespoke
// (length-prefixed sections, 16-bit opcode words) and x/text's
// transform.Transformer works over byte streams, not a seekable cursor with
// "give me the next uint16" semantics.
type leReader struct {
	data []byte
	pos  int
}

func newLEReader(data []byte) *leReader {
	return &leReader{data: data}
}

func (r *leReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *leReader) readBytes(n int) ([]byte, bool) {
	if n < 0 || r.remaining() < n {
		return nil, false
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, true
}

func (r *leReader) readUint16() (uint16, bool) {
	b, ok := r.readBytes(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

func (r *leReader) readUint16s(n int) ([]uint16, bool) {
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		v, ok := r.readUint16()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// deleteLastScalar removes the final Unicode scalar value (not byte, not
// UTF-16 code unit) from s, per §4.5's naive-backspace rule.
func deleteLastScalar(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// commonPrefixLen returns the length, in bytes, of the longest common
// prefix of a and b, rewound if necessary to land on a rune boundary. The
// rewriter's action derivation (§4.5) uses this to find the unchanged
// prefix between the composing buffer before and after a substitution.
func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	for i > 0 && i < len(a) && !utf8.RuneStart(a[i]) {
		i--
	}
	return i
}
