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

import "os"

var km2Magic = [4]byte{'K', 'M', 'K', 'L'}

// Load parses KM2-format bytes into an immutable Layout (§4.1). File-system
// and in-memory byte sources are treated identically -- this is the only
// entry point; LoadFile just reads the file and calls this.
func Load(data []byte) (*Layout, error) {
	r := newLEReader(data)

	magic, ok := r.readBytes(4)
	if !ok || magic[0] != km2Magic[0] || magic[1] != km2Magic[1] ||
		magic[2] != km2Magic[2] || magic[3] != km2Magic[3] {
		return nil, wrapError(InvalidFormat, ErrInvalidFormat)
	}

	verBytes, ok := r.readBytes(2)
	if !ok {
		return nil, newError(InvalidFormat, "truncated version field")
	}
	major, minor := verBytes[0], verBytes[1]
	if major != 1 || (minor != 3 && minor != 4 && minor != 5) {
		return nil, newError(InvalidFormat, "unsupported version %d.%d", major, minor)
	}

	stringCount, ok := r.readUint16()
	if !ok {
		return nil, newError(InvalidFormat, "truncated string count")
	}
	ruleCount, ok := r.readUint16()
	if !ok {
		return nil, newError(InvalidFormat, "truncated rule count")
	}

	var infoCount uint16
	if minor >= 4 {
		infoCount, ok = r.readUint16()
		if !ok {
			return nil, newError(InvalidFormat, "truncated info count")
		}
	}

	opts, ok := readOptions(r, minor)
	if !ok {
		return nil, newError(InvalidFormat, "truncated options record")
	}

	strings, ok := readStrings(r, int(stringCount))
	if !ok {
		return nil, newError(InvalidFormat, "truncated string table")
	}

	metadata, ok := readMetadata(r, int(infoCount))
	if !ok {
		return nil, newError(InvalidFormat, "truncated metadata section")
	}

	rules, ok := readRules(r, int(ruleCount))
	if !ok {
		return nil, newError(InvalidFormat, "truncated rule table")
	}

	layout := &Layout{
		Header: Header{
			Major:       major,
			Minor:       minor,
			StringCount: stringCount,
			InfoCount:   infoCount,
			RuleCount:   ruleCount,
		},
		Options:  opts,
		Strings:  strings,
		Metadata: metadata,
		Rules:    rules,
	}

	processed, err := Preprocess(layout)
	if err != nil {
		return nil, err
	}
	layout.processed = processed

	return layout, nil
}

// LoadFile reads path and parses it as KM2 bytes (§4.1's "accepts
// file-system or in-memory byte sources; treats them identically").
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(FileNotFound, err)
	}
	return Load(data)
}

// readOptions reads the minor-version-dependent options record and
// synthesizes a v1.5-shaped view, filling in the documented defaults for
// fields the file's version doesn't carry (§4.1).
func readOptions(r *leReader, minor uint8) (Options, bool) {
	n := 4
	if minor == 5 {
		n = 5
	}
	raw, ok := r.readBytes(n)
	if !ok {
		return Options{}, false
	}
	opts := Options{
		TrackCaps:      raw[0] != 0,
		SmartBackspace: raw[1] != 0,
		EatUnused:      raw[2] != 0,
		USLayoutBased:  raw[3] != 0,
	}
	if minor == 5 {
		opts.TreatCtrlAltAsRAlt = raw[4] != 0
	} else {
		// §3: treat_ctrl_alt_as_ralt defaults to true on v1.3/v1.4.
		opts.TreatCtrlAltAsRAlt = true
	}
	return opts, true
}

func readStrings(r *leReader, count int) ([]string, bool) {
	out := make([]string, count)
	for i := 0; i < count; i++ {
		n, ok := r.readUint16()
		if !ok {
			return nil, false
		}
		units, ok := r.readUint16s(int(n))
		if !ok {
			return nil, false
		}
		out[i] = codeUnitsToString(units)
	}
	return out, true
}

func readMetadata(r *leReader, count int) (map[string][]byte, bool) {
	out := make(map[string][]byte, count)
	for i := 0; i < count; i++ {
		idBytes, ok := r.readBytes(4)
		if !ok {
			return nil, false
		}
		n, ok := r.readUint16()
		if !ok {
			return nil, false
		}
		payload, ok := r.readBytes(int(n))
		if !ok {
			return nil, false
		}
		out[string(idBytes)] = append([]byte(nil), payload...)
	}
	return out, true
}

func readRules(r *leReader, count int) ([]RawRule, bool) {
	out := make([]RawRule, count)
	for i := 0; i < count; i++ {
		lhs, ok := readOpcodeStream(r)
		if !ok {
			return nil, false
		}
		rhs, ok := readOpcodeStream(r)
		if !ok {
			return nil, false
		}
		out[i] = RawRule{LHS: lhs, RHS: rhs}
	}
	return out, true
}

// readOpcodeStream reads a 16-bit byte-length prefix followed by that many
// bytes, reinterpreted as 16-bit little-endian words (§4.1, §3). An odd
// byte-length can't hold a whole number of opcode words and is a truncated
// stream.
func readOpcodeStream(r *leReader) ([]uint16, bool) {
	byteLen, ok := r.readUint16()
	if !ok {
		return nil, false
	}
	if byteLen%2 != 0 {
		return nil, false
	}
	return r.readUint16s(int(byteLen) / 2)
}
