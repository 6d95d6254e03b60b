package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/epidemic/config"
	"github.com/sarchlab/epidemic/simulation"
)

var describeSeed int64

var describeCmd = &cobra.Command{
	Use:   "describe MODEL.yaml",
	Short: "Create the population of a model and list everyone's places.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := options.Seed
		if cmd.Flags().Changed("seed") {
			seed = describeSeed
		}

		model, err := config.Load(args[0])
		if err != nil {
			return err
		}

		s, err := simulation.MakeBuilder().
			WithSeed(seed).
			WithoutRecording().
			WithoutMonitoring().
			Build(model)
		if err != nil {
			return err
		}

		return s.Describe(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().Int64Var(&describeSeed, "seed", 0,
		"Seed of the random stream, 0 picks one from the clock")
}
