// Package cmd provides the command-line interface for the epidemic simulator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/epidemic/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "epidemic",
	Short: "Epidemic simulates the spread of a disease through a population.",
	Long: `Epidemic simulates the spread of a disease through a synthetic ` +
		`population whose members move between homes, workplaces and other ` +
		`places following daily schedules. Defaults of the flags can be set ` +
		`with EPIDEMIC_* environment variables or in a .env file.`,
	SilenceUsage: true,
}

var options config.Options

func init() {
	cobra.OnInitialize(loadOptions)
}

func loadOptions() {
	var err error

	options, err = config.LoadOptions(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Epidemic: %s\n", err)
		atexit.Exit(1)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
