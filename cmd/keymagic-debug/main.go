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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/keymagic/keymagic-core"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keymagic-debug",
		Short: "Inspect and drive a KM2 layout from the command line",
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [layout.km2]",
		Short: "Print a layout's header, options, and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := keymagic.LoadFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("version: %d.%d\n", layout.Header.Major, layout.Header.Minor)
			fmt.Printf("strings: %d  rules: %d  info: %d\n",
				layout.Header.StringCount, layout.Header.RuleCount, layout.Header.InfoCount)
			fmt.Printf("options: track_caps=%v smart_backspace=%v eat_unused=%v us_layout_based=%v treat_ctrl_alt_as_ralt=%v\n",
				layout.Options.TrackCaps, layout.Options.SmartBackspace, layout.Options.EatUnused,
				layout.Options.USLayoutBased, layout.Options.TreatCtrlAltAsRAlt)

			if name, ok := layout.Name(); ok {
				fmt.Printf("name: %s\n", name)
			}
			if desc, ok := layout.Description(); ok {
				fmt.Printf("description: %s\n", desc)
			}
			if hk, ok := layout.Hotkey(); ok {
				fmt.Printf("hotkey: %s\n", hk)
			}
			return nil
		},
	}

	typeCmd := &cobra.Command{
		Use:   "type [layout.km2] [text]",
		Short: "Feed each rune of text through the engine as a key event and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := keymagic.New()
			if err := engine.LoadFile(args[0]); err != nil {
				return err
			}

			for _, r := range args[1] {
				vk, mods := runeToVK(r)
				action, err := engine.ProcessKey(vk, r, mods)
				if err != nil {
					return err
				}
				fmt.Printf("%c -> %s composing=%q processed=%v\n", r, describeAction(action), action.Composing, action.IsProcessed)
			}
			fmt.Printf("final: %q\n", engine.GetComposing())
			return nil
		},
	}

	hotkeyCmd := &cobra.Command{
		Use:   "hotkey [string]",
		Short: "Parse a hotkey string and print its decoded form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hk, err := keymagic.ParseHotkey(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("vk=%s ctrl=%v alt=%v shift=%v meta=%v\n", hk.VK, hk.Ctrl, hk.Alt, hk.Shift, hk.Meta)
			return nil
		},
	}

	rootCmd.AddCommand(inspectCmd, typeCmd, hotkeyCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runeToVK maps an ASCII rune to the virtual key and modifiers a US
// keyboard would have produced it with. It covers letters, digits, and
// space only; any other rune maps to VKeyNone with no modifiers.
func runeToVK(r rune) (keymagic.VKey, keymagic.Modifiers) {
	switch {
	case r >= 'a' && r <= 'z':
		return keymagic.VKeyA + keymagic.VKey(r-'a'), 0
	case r >= 'A' && r <= 'Z':
		return keymagic.VKeyA + keymagic.VKey(r-'A'), keymagic.ModShift
	case r >= '0' && r <= '9':
		return keymagic.VKey0 + keymagic.VKey(r-'0'), 0
	case r == ' ':
		return keymagic.VKeySpace, 0
	default:
		return keymagic.VKeyNone, 0
	}
}

func describeAction(a keymagic.Action) string {
	var b strings.Builder
	switch a.Kind {
	case keymagic.ActionNone:
		b.WriteString("None")
	case keymagic.ActionInsert:
		fmt.Fprintf(&b, "Insert(%q)", a.Text)
	case keymagic.ActionBackspaceDelete:
		fmt.Fprintf(&b, "BackspaceDelete(%d)", a.DeleteCount)
	case keymagic.ActionBackspaceDeleteAndInsert:
		fmt.Fprintf(&b, "BackspaceDeleteAndInsert(%d,%q)", a.DeleteCount, a.Text)
	}
	return b.String()
}
