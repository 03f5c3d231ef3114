package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dynacat",
	Short: "A DynamoDB-backed catalog for Apache Iceberg",
	Long: `Dynacat resolves Apache Iceberg table locations from namespace
metadata stored in a DynamoDB table.

Table locations are derived from the configured warehouse root, or from a
namespace-level location override stored in the metadata table.`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags can be added here
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
