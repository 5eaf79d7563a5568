package cli

import (
	"fmt"

	"github.com/mcp-initiator/mcpinit/internal/doctor"
	"github.com/spf13/cobra"
)

var (
	doctorFix    bool
	doctorPython string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create the config directory when it is missing")
	doctorCmd.Flags().StringVar(&doctorPython, "python", "python3", "Python interpreter to check")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the mcpinit configuration and the Python toolchain",
	Long: `Run diagnostic checks on the mcpinit configuration and on the tools generated
projects need: Python ` + doctor.MinPython + `, pip, and the configured editor.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := doctor.Run(cmd.OutOrStdout(), doctor.Options{
			Fix:    doctorFix,
			Python: doctorPython,
		})
		if problems := report.Problems(); len(problems) > 0 {
			return fmt.Errorf("doctor found %d problem(s)", len(problems))
		}
		return nil
	},
}
