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

// opcode identifies a 16-bit instruction in a rule's LHS or RHS opcode
// stream (§3). The numbering is the on-disk KM2 contract and must never
// change; it's a closed set the same way inst.OpCode is in a CPU
// instruction catalog.
type opcode uint16

const (
	opString     opcode = 0x00F0
	opVariable   opcode = 0x00F1
	opReference  opcode = 0x00F2
	opPredefined opcode = 0x00F3
	opModifier   opcode = 0x00F4
	opAnyOf      opcode = 0x00F5
	opAnd        opcode = 0x00F6
	opNotAnyOf   opcode = 0x00F7
	opAny        opcode = 0x00F8
	opSwitch     opcode = 0x00F9
)

// predefinedNull is the sentinel PREDEFINED operand value used on a
// single-opcode RHS to mean "produce no output" (§4.5).
const predefinedNull uint16 = 0
