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
	"errors"
	"fmt"
)

// Kind discriminates the error taxonomy of §7: every error the public API
// returns carries one of these, so hosts can branch on failure category
// without string-matching messages.
type Kind int

const (
	// InvalidHandle means a null or destroyed engine reference was used.
	InvalidHandle Kind = iota
	// InvalidParameter means a null pointer or malformed UTF-8 was passed.
	InvalidParameter
	// FileNotFound means a KM2 path could not be opened.
	FileNotFound
	// InvalidFormat means the KM2 bytes had a bad magic, an unsupported
	// version, or a truncated section.
	InvalidFormat
	// NoKeyboard means ProcessKey was called with no layout loaded.
	NoKeyboard
	// OutOfMemory means an allocation failed during load or rewrite.
	OutOfMemory
	// Utf8Conversion means SetComposing was given invalid UTF-8.
	Utf8Conversion
)

func (k Kind) String() string {
	switch k {
	case InvalidHandle:
		return "InvalidHandle"
	case InvalidParameter:
		return "InvalidParameter"
	case FileNotFound:
		return "FileNotFound"
	case InvalidFormat:
		return "InvalidFormat"
	case NoKeyboard:
		return "NoKeyboard"
	case OutOfMemory:
		return "OutOfMemory"
	case Utf8Conversion:
		return "Utf8Conversion"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across the public API. No
// internal panic is ever reachable through that boundary (§7): every
// failure path constructs one of these instead.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("keymagic: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("keymagic: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), err: err}
}

// ErrInvalidFormat is returned (wrapped in an *Error) when KM2 bytes fail
// to parse: bad magic, unsupported major/minor, or a truncated section.
var ErrInvalidFormat = errors.New("invalid KM2 format")

// ErrNoKeyboard is returned (wrapped in an *Error) by ProcessKey and
// TestProcessKey when no layout has been loaded.
var ErrNoKeyboard = errors.New("no keyboard layout loaded")

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
