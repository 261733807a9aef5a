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

// Capture is what a matched segment recorded about the input it consumed
// (§4.4's "A capture carries (value, position, segment_index)"). Value
// holds a single code point as a one-rune string for Any/AnyOfVariable/
// NotAnyOfVariable, or the whole matched slice for Variable/String.
// Position is only meaningful for an AnyOfVariable capture, where it is
// the matched code unit's index within the source variable string; every
// other segment kind leaves it at -1.
type Capture struct {
	Value        string
	Position     int
	SegmentIndex int
}

// captureSet indexes captures by their 1-based LHS segment number, the way
// RHS REFERENCE and MODIFIER operands look them up.
type captureSet map[int]Capture

func (c captureSet) get(segmentIndex int) (Capture, bool) {
	found, ok := c[segmentIndex]
	return found, ok
}
