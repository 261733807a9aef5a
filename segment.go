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

// segmentKind discriminates the closed set of LHS segment variants (§4.3).
// Segments form a closed tagged union; matching is a per-variant branch in
// match.go, never dynamic dispatch (§9 "Dynamic dispatch: none").
type segmentKind int

const (
	segString segmentKind = iota
	segVariable
	segAnyOfVariable
	segNotAnyOfVariable
	segAny
	segVirtualKey
	segState
)

// Segment is one element of a preprocessed rule's LHS, numbered 1..N in
// left-to-right source order (§4.3). Only the fields relevant to Kind are
// populated; the rest are zero.
type Segment struct {
	Kind segmentKind

	Literal string // segString
	VarID   int    // segVariable, segAnyOfVariable, segNotAnyOfVariable: 1-based string-table index
	Chord   []VKey // segVirtualKey
	StateID int    // segState: 1-based string-table index naming the state
}

// consumedLength returns how many UTF-16 code units this segment expects to
// consume from the composing buffer's tail (§4.4's "Length per segment"
// table). State and VirtualKey segments consume nothing.
func (s Segment) consumedLength(l *Layout) int {
	switch s.Kind {
	case segString:
		return utf16Len(s.Literal)
	case segVariable:
		return utf16Len(l.String(s.VarID))
	case segAnyOfVariable, segNotAnyOfVariable, segAny:
		return 1
	default: // segVirtualKey, segState
		return 0
	}
}

// rhsOpKind discriminates the closed set of RHS evaluation opcodes (§4.5).
type rhsOpKind int

const (
	rhsString rhsOpKind = iota
	rhsVariable
	rhsVariableIndexed // VARIABLE v, MODIFIER <REFERENCE n>: emit one code unit of v at captures[n].Position
	rhsReference
	rhsNull
	rhsSwitch
)

// RHSOp is one element of a preprocessed rule's right-hand side (§4.5).
type RHSOp struct {
	Kind rhsOpKind

	Text         string // rhsString
	VarID        int    // rhsVariable, rhsVariableIndexed
	RefSegment   int    // rhsVariableIndexed, rhsReference: 1-based LHS segment index
	StateID      int    // rhsSwitch
}

// ProcessedRule is a rule (§3) after segmentation and priority computation.
type ProcessedRule struct {
	OriginalIndex int
	LHS           []Segment
	RHS           []RHSOp
	Priority      rulePriority

	// malformed is set when segmentation hit an opcode stream this
	// parser couldn't make sense of. A malformed rule never matches
	// (§7 "the offending rule fails to match (rather than aborting
	// load)") but still occupies a slot so OriginalIndex stays stable.
	malformed bool
}

// rulePriority is the sort key computed for a rule in §4.3: class first
// (lower wins), then longer pattern, more virtual keys, more states, and
// finally original source order.
type rulePriority struct {
	class         int
	patternLength int
	vkCount       int
	stateCount    int
}

const (
	classStateSpecific = 0
	classVirtualKey    = 1
	classLongPattern   = 2
	classShortPattern  = 3
)
