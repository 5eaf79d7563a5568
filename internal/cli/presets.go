package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/spf13/cobra"
)

var presetsJSON bool

func init() {
	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(presetsCmd)
}

type presetJSON struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Default     bool     `json:"default"`
	Dirs        []string `json:"dirs"`
	Files       []string `json:"files"`
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available project presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := scaffold.Presets()
		if err != nil {
			return fmt.Errorf("loading presets: %w", err)
		}
		out := cmd.OutOrStdout()

		if presetsJSON {
			items := make([]presetJSON, 0, len(sets))
			for _, s := range sets {
				item := presetJSON{
					ID:          s.ID,
					Description: s.Description,
					Default:     s.ID == scaffold.DefaultPreset,
					Dirs:        s.Dirs,
				}
				for _, f := range s.Files {
					item.Files = append(item.Files, f.RelPath())
				}
				items = append(items, item)
			}
			data, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling presets: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Preset", "Description", "Directories", "Files"})
		for _, s := range sets {
			id := s.ID
			if id == scaffold.DefaultPreset {
				id += " (default)"
			}
			t.AppendRow(table.Row{id, s.Description, strings.Join(s.Dirs, ", "), len(s.Files)})
		}
		t.Render()
		return nil
	},
}
