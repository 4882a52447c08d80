package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/ordermail/internal/output"
	"github.com/jmylchreest/ordermail/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format := output.FormatText
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			format = output.FormatJSON
		}
		w, err := output.NewWriter(cmd.OutOrStdout(), format)
		if err != nil {
			return err
		}
		if err := w.Write(version.Get()); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
	rootCmd.Version = version.String()
}
