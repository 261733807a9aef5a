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

// Package keymagic is a platform-agnostic input-method engine. It loads a
// compiled keyboard-layout file (the KM2 binary format, versions 1.3
// through 1.5) and turns a stream of keyboard events into edit actions on a
// host's composing buffer: a deterministic rewrite machine matches the
// highest-priority rule against the tail of the buffer, substitutes its
// right-hand side, optionally chains further text-only rewrites, and
// reports how the host should mutate the surrounding document.
//
// The package does not talk to any window system, text-services framework,
// or input-method shell. It accepts (virtual key, character, modifiers)
// triples and returns Action values; wiring those to a platform's actual
// input pipeline is the host's job.
package keymagic
