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

// maxHistory is the bound H on the smart-backspace snapshot stack (§3).
const maxHistory = 50

// snapshot is the pre-key-event state smart backspace can restore (§3
// "snapshots {composing, active_states}").
type snapshot struct {
	composing    string
	activeStates map[int]bool
}

// history is the bounded, FIFO-eviction snapshot stack backing smart
// backspace (§3, §4.5). A snapshot is pushed before every non-backspace
// key and popped by one smart backspace; once it holds H entries, pushing
// another evicts the oldest rather than growing further.
type history struct {
	entries []snapshot
}

func (h *history) push(composing string, states map[int]bool) {
	h.entries = append(h.entries, snapshot{composing: composing, activeStates: cloneStates(states)})
	if len(h.entries) > maxHistory {
		h.entries = h.entries[len(h.entries)-maxHistory:]
	}
}

// pop removes and returns the most recent snapshot, used by a smart
// backspace (§4.5 "pops the latest snapshot").
func (h *history) pop() (snapshot, bool) {
	if len(h.entries) == 0 {
		return snapshot{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

func (h *history) clear() {
	h.entries = nil
}

func (h *history) len() int {
	return len(h.entries)
}
