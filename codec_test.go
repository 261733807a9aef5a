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
	"testing"
)

func TestDecodeUTF16LEBytes(t *testing.T) {
	want := "kaက"
	units := stringToCodeUnits(want)
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(raw[i*2:], u)
	}
	got, err := decodeUTF16LEBytes(raw)
	if err != nil {
		t.Fatalf("decodeUTF16LEBytes: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUtf16LenSurrogatePair(t *testing.T) {
	// U+1F600 needs a surrogate pair: two UTF-16 code units.
	if n := utf16Len("\U0001F600"); n != 2 {
		t.Errorf("utf16Len(emoji) = %d, want 2", n)
	}
	if n := utf16Len("a"); n != 1 {
		t.Errorf("utf16Len(a) = %d, want 1", n)
	}
	if n := utf16Len("က"); n != 1 {
		t.Errorf("utf16Len(U+1000) = %d, want 1", n)
	}
}

func TestCodeUnitsRoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "ကခဂဃ", "\U0001F600mix"} {
		units := stringToCodeUnits(s)
		if got := codeUnitsToString(units); got != s {
			t.Errorf("round trip %q -> %v -> %q", s, units, got)
		}
	}
}

func TestDeleteLastScalar(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"a", ""},
		{"ab", "a"},
		{"ka", "k"},
		{"က", ""},
		{"x\U0001F600", "x"},
	}
	for _, c := range cases {
		if got := deleteLastScalar(c.in); got != c.want {
			t.Errorf("deleteLastScalar(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCommonPrefixLen(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"hello world", "hello universe", len("hello ")},
		{"", "abc", 0},
		{"abc", "abc", 3},
		{"ka", "kb", 1},
	}
	for _, c := range cases {
		if got := commonPrefixLen(c.a, c.b); got != c.want {
			t.Errorf("commonPrefixLen(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestLEReader(t *testing.T) {
	r := newLEReader([]byte{0x4B, 0x4D, 0x4B, 0x4C, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00})
	magic, ok := r.readBytes(4)
	if !ok || string(magic) != "KMKL" {
		t.Fatalf("readBytes magic = %q, %v", magic, ok)
	}
	v, ok := r.readUint16()
	if !ok || v != 1 {
		t.Fatalf("readUint16 = %d, %v, want 1", v, ok)
	}
	units, ok := r.readUint16s(2)
	if !ok || units[0] != 2 || units[1] != 3 {
		t.Fatalf("readUint16s = %v, %v", units, ok)
	}
	if r.remaining() != 0 {
		t.Errorf("remaining() = %d, want 0", r.remaining())
	}
	if _, ok := r.readUint16(); ok {
		t.Errorf("readUint16 past end should fail")
	}
}
