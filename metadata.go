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

// Metadata ids, the 4-byte ASCII keys a KM2 file's metadata section uses
// (§3).
const (
	metaName        = "name"
	metaDescription = "desc"
	metaHotkey      = "htky"
	metaFont        = "font"
	metaIcon        = "icon"
)

// Name returns the layout's display name.
func (l *Layout) Name() (string, bool) { return l.MetadataText(metaName) }

// Description returns the layout's free-text description.
func (l *Layout) Description() (string, bool) { return l.MetadataText(metaDescription) }

// Hotkey returns the layout's raw hotkey string, in the grammar ParseHotkey
// accepts (§6).
func (l *Layout) Hotkey() (string, bool) { return l.MetadataText(metaHotkey) }

// FontFamily returns the layout's suggested display font family name.
func (l *Layout) FontFamily() (string, bool) { return l.MetadataText(metaFont) }

// IconData returns the layout's icon blob by reference; callers must not
// mutate it (§5 "The icon blob is returned by reference").
func (l *Layout) IconData() ([]byte, bool) { return l.MetadataBytes(metaIcon) }
