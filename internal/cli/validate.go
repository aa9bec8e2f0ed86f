package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fpbx-tools/modgen/internal/manifest"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [module.xml]",
	Short: "Check a module.xml against the module schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "module.xml"
		if len(args) == 1 {
			path = args[0]
		}

		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Valid {
			color.New(color.FgGreen).Fprintf(out, "%s is valid\n", path)
			return nil
		}

		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
		return fmt.Errorf("%s is invalid: %d issue(s)", path, len(result.Issues))
	},
}
