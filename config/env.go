package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Options are the run time settings that do not belong to the model.
type Options struct {
	Seed           int64  `env:"EPIDEMIC_SEED"`
	Output         string `env:"EPIDEMIC_DB"`
	Record         bool   `env:"EPIDEMIC_RECORD" envDefault:"true"`
	TraceMovements bool   `env:"EPIDEMIC_TRACE_MOVEMENTS"`
	Monitor        bool   `env:"EPIDEMIC_MONITOR"`
	MonitorPort    int    `env:"EPIDEMIC_MONITOR_PORT"`
	OpenBrowser    bool   `env:"EPIDEMIC_OPEN_BROWSER"`
	LogEvents      bool   `env:"EPIDEMIC_LOG_EVENTS"`
	Header         bool   `env:"EPIDEMIC_CSV_HEADER"`
	ParallelIDs    bool   `env:"EPIDEMIC_PARALLEL_IDS"`
}

// LoadOptions reads the options from the environment, after loading the given
// dotenv files. Missing dotenv files are skipped and variables already set in
// the environment win over the files.
func LoadOptions(dotenvFiles ...string) (Options, error) {
	for _, f := range dotenvFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Options{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}

	return opts, nil
}
