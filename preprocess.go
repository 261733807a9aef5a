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

import "sort"

// Preprocess segments every rule's opcode streams, computes each rule's
// priority, and stable-sorts the result so the matcher can try rules in
// priority order without re-deriving it on every key event (§4.3).
func Preprocess(l *Layout) ([]ProcessedRule, error) {
	out := make([]ProcessedRule, len(l.Rules))
	for i, raw := range l.Rules {
		pr := ProcessedRule{OriginalIndex: i}

		lhs, ok := segmentLHS(raw.LHS)
		if !ok {
			pr.malformed = true
		} else {
			pr.LHS = lhs
		}

		rhs, ok := segmentRHS(raw.RHS)
		if !ok {
			pr.malformed = true
		} else {
			pr.RHS = rhs
		}

		if !pr.malformed {
			pr.Priority = computePriority(l, lhs)
		} else {
			// A malformed rule is sorted last within its (nonexistent)
			// class so it never shadows a well-formed rule; the matcher
			// simply never matches it (§7).
			pr.Priority = rulePriority{class: classShortPattern + 1}
		}

		out[i] = pr
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Priority, out[j].Priority
		if a.class != b.class {
			return a.class < b.class
		}
		if a.patternLength != b.patternLength {
			return a.patternLength > b.patternLength
		}
		if a.vkCount != b.vkCount {
			return a.vkCount > b.vkCount
		}
		if a.stateCount != b.stateCount {
			return a.stateCount > b.stateCount
		}
		return out[i].OriginalIndex < out[j].OriginalIndex
	})

	return out, nil
}

func computePriority(l *Layout, lhs []Segment) rulePriority {
	p := rulePriority{class: classShortPattern}
	for _, seg := range lhs {
		switch seg.Kind {
		case segState:
			p.class = classStateSpecific
			p.stateCount++
		case segVirtualKey:
			if p.class > classVirtualKey {
				p.class = classVirtualKey
			}
			p.vkCount++
		}
		p.patternLength += seg.consumedLength(l)
	}
	if p.class >= classLongPattern && p.patternLength > 3 {
		p.class = classLongPattern
	}
	return p
}

// segmentLHS walks a rule's LHS opcode stream and emits the segment
// sequence described in §4.3. Returns ok=false if the stream doesn't
// decode into a well-formed segment sequence; the caller treats that as a
// soft failure (§7), not a load abort.
func segmentLHS(stream []uint16) ([]Segment, bool) {
	var segs []Segment
	i := 0
	for i < len(stream) {
		op := opcode(stream[i])
		switch op {
		case opString:
			i++
			content, n, ok := readInlineString(stream, i)
			if !ok {
				return nil, false
			}
			segs = append(segs, Segment{Kind: segString, Literal: content})
			i += n

		case opVariable:
			if i+1 >= len(stream) {
				return nil, false
			}
			varID := int(stream[i+1])
			i += 2
			if i < len(stream) && opcode(stream[i]) == opModifier {
				if i+1 >= len(stream) {
					return nil, false
				}
				switch opcode(stream[i+1]) {
				case opAnyOf:
					segs = append(segs, Segment{Kind: segAnyOfVariable, VarID: varID})
				case opNotAnyOf:
					segs = append(segs, Segment{Kind: segNotAnyOfVariable, VarID: varID})
				default:
					return nil, false
				}
				i += 2
			} else {
				segs = append(segs, Segment{Kind: segVariable, VarID: varID})
			}

		case opAny:
			segs = append(segs, Segment{Kind: segAny})
			i++

		case opAnd:
			i++
			chord, n, ok := readChord(stream, i)
			if !ok {
				return nil, false
			}
			segs = append(segs, Segment{Kind: segVirtualKey, Chord: chord})
			i += n

		case opPredefined:
			if i+1 >= len(stream) {
				return nil, false
			}
			segs = append(segs, Segment{Kind: segVirtualKey, Chord: []VKey{VKey(stream[i+1])}})
			i += 2

		case opSwitch:
			if i+1 >= len(stream) {
				return nil, false
			}
			segs = append(segs, Segment{Kind: segState, StateID: int(stream[i+1])})
			i += 2

		default:
			return nil, false
		}
	}
	return segs, true
}

// readInlineString reads a STRING opcode's operand: a 16-bit length
// followed by that many UTF-16 code units, starting at stream[i].
func readInlineString(stream []uint16, i int) (string, int, bool) {
	if i >= len(stream) {
		return "", 0, false
	}
	n := int(stream[i])
	if i+1+n > len(stream) {
		return "", 0, false
	}
	return codeUnitsToString(stream[i+1 : i+1+n]), 1 + n, true
}

// readChord reads a run of (PREDEFINED, vkey) pairs starting at stream[i],
// stopping at the first word that isn't PREDEFINED. AND has no explicit
// operand count in the opcode table (§3); terminating on the first
// non-PREDEFINED word keeps segmentation a single forward walk, consistent
// with every other opcode here.
func readChord(stream []uint16, i int) ([]VKey, int, bool) {
	var chord []VKey
	n := 0
	for i+n < len(stream) && opcode(stream[i+n]) == opPredefined {
		if i+n+1 >= len(stream) {
			return nil, 0, false
		}
		chord = append(chord, VKey(stream[i+n+1]))
		n += 2
	}
	if len(chord) == 0 {
		return nil, 0, false
	}
	return chord, n, true
}

// segmentRHS walks a rule's RHS opcode stream into the evaluation ops
// described in §4.5.
func segmentRHS(stream []uint16) ([]RHSOp, bool) {
	var ops []RHSOp
	i := 0
	for i < len(stream) {
		op := opcode(stream[i])
		switch op {
		case opString:
			i++
			content, n, ok := readInlineString(stream, i)
			if !ok {
				return nil, false
			}
			ops = append(ops, RHSOp{Kind: rhsString, Text: content})
			i += n

		case opVariable:
			if i+1 >= len(stream) {
				return nil, false
			}
			varID := int(stream[i+1])
			i += 2
			if i < len(stream) && opcode(stream[i]) == opModifier {
				if i+2 >= len(stream) || opcode(stream[i+1]) != opReference {
					return nil, false
				}
				refSeg := int(stream[i+2])
				ops = append(ops, RHSOp{Kind: rhsVariableIndexed, VarID: varID, RefSegment: refSeg})
				i += 3
			} else {
				ops = append(ops, RHSOp{Kind: rhsVariable, VarID: varID})
			}

		case opReference:
			if i+1 >= len(stream) {
				return nil, false
			}
			ops = append(ops, RHSOp{Kind: rhsReference, RefSegment: int(stream[i+1])})
			i += 2

		case opPredefined:
			if i+1 >= len(stream) {
				return nil, false
			}
			if stream[i+1] == predefinedNull {
				ops = append(ops, RHSOp{Kind: rhsNull})
			}
			i += 2

		case opSwitch:
			if i+1 >= len(stream) {
				return nil, false
			}
			ops = append(ops, RHSOp{Kind: rhsSwitch, StateID: int(stream[i+1])})
			i += 2

		default:
			return nil, false
		}
	}
	return ops, true
}
