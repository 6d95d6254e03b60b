package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sarchlab/epidemic/config"
	"github.com/sarchlab/epidemic/report"
	"github.com/sarchlab/epidemic/simulation"
)

var runFlags config.Options

var runCmd = &cobra.Command{
	Use:   "run MODEL.yaml",
	Short: "Simulate a model and print the census of every day.",
	Long: `Simulate a model and print, for every day, the day number ` +
		`followed by the number of people in each disease state: ` +
		`uninfected, latent, asymptomatic, symptomatic, bedridden, ` +
		`recovered and dead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := mergeFlags(cmd.Flags(), options, runFlags)

		model, err := config.Load(args[0])
		if err != nil {
			return err
		}

		csv := report.NewCSVWriter(os.Stdout)
		if opts.Header {
			csv.WithHeader()
		}

		s, err := builderFor(opts).
			WithSnapshotHandler(csv).
			Build(model)
		if err != nil {
			return err
		}
		defer s.Terminate()

		fmt.Fprintf(os.Stderr, "Simulation %s, seed %d\n", s.ID(), s.Seed())

		err = s.Run()
		if err != nil {
			return err
		}

		return csv.Err()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.Int64Var(&runFlags.Seed, "seed", 0,
		"Seed of the random stream, 0 picks one from the clock")
	f.StringVar(&runFlags.Output, "db", "",
		"Name of the SQLite database to record into, without extension")
	f.BoolVar(&runFlags.Record, "record", true,
		"Record the census and the state changes into a database")
	f.BoolVar(&runFlags.TraceMovements, "trace-movements", false,
		"Also record every movement")
	f.BoolVar(&runFlags.Monitor, "monitor", false,
		"Serve the state of the simulation over HTTP")
	f.IntVar(&runFlags.MonitorPort, "monitor-port", 0,
		"Port of the monitoring server, 0 picks a free one")
	f.BoolVar(&runFlags.OpenBrowser, "open", false,
		"Open the monitoring server in a browser")
	f.BoolVar(&runFlags.LogEvents, "log-events", false,
		"Log every event to stderr")
	f.BoolVar(&runFlags.Header, "header", false,
		"Start the output with a header line")
	f.BoolVar(&runFlags.ParallelIDs, "parallel-ids", false,
		"Give events globally unique IDs instead of sequential ones")
}

// mergeFlags overrides the options with the flags given on the command line.
func mergeFlags(
	flags *pflag.FlagSet,
	opts, fromFlags config.Options,
) config.Options {
	override := map[string]func(){
		"seed":            func() { opts.Seed = fromFlags.Seed },
		"db":              func() { opts.Output = fromFlags.Output },
		"record":          func() { opts.Record = fromFlags.Record },
		"trace-movements": func() { opts.TraceMovements = fromFlags.TraceMovements },
		"monitor":         func() { opts.Monitor = fromFlags.Monitor },
		"monitor-port":    func() { opts.MonitorPort = fromFlags.MonitorPort },
		"open":            func() { opts.OpenBrowser = fromFlags.OpenBrowser },
		"log-events":      func() { opts.LogEvents = fromFlags.LogEvents },
		"header":          func() { opts.Header = fromFlags.Header },
		"parallel-ids":    func() { opts.ParallelIDs = fromFlags.ParallelIDs },
	}

	for name, apply := range override {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			apply()
		}
	}

	return opts
}

func builderFor(opts config.Options) simulation.Builder {
	b := simulation.MakeBuilder().WithSeed(opts.Seed)

	if opts.Record {
		if opts.Output != "" {
			b = b.WithOutputFileName(opts.Output)
		}

		if opts.TraceMovements {
			b = b.WithMovementTracing()
		}
	} else {
		b = b.WithoutRecording()
	}

	if opts.Monitor {
		if opts.MonitorPort != 0 {
			b = b.WithMonitorPort(opts.MonitorPort)
		}

		if opts.OpenBrowser {
			b = b.WithBrowser()
		}
	} else {
		b = b.WithoutMonitoring()
	}

	if opts.ParallelIDs {
		b = b.WithParallelIDs()
	}

	if opts.LogEvents {
		b = b.WithEventLogger(log.New(os.Stderr, "", 0))
	}

	return b
}
