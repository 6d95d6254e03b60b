// Package report prints the daily census of a simulation.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sarchlab/epidemic/disease"
)

// A CSVWriter writes one line per day: the day number followed by the number
// of people in each disease state, in state order.
type CSVWriter struct {
	w          *csv.Writer
	withHeader bool
	started    bool
	err        error
}

// NewCSVWriter creates a CSVWriter that writes to out.
func NewCSVWriter(out io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(out)}
}

// WithHeader makes the writer start with a line naming the columns.
func (c *CSVWriter) WithHeader() *CSVWriter {
	c.withHeader = true
	return c
}

// HandleSnapshot writes the line of one day. After the first failure nothing
// more is written and Err reports the failure.
func (c *CSVWriter) HandleSnapshot(s disease.Snapshot) {
	if c.err != nil {
		return
	}

	if !c.started && c.withHeader {
		header := []string{"day"}
		for _, count := range s.Counts {
			header = append(header, count.State.String())
		}

		c.write(header)
	}
	c.started = true

	record := make([]string, 0, len(s.Counts)+1)
	record = append(record, strconv.Itoa(s.Day))
	for _, count := range s.Counts {
		record = append(record, strconv.Itoa(count.Count))
	}

	c.write(record)
}

func (c *CSVWriter) write(record []string) {
	if c.err != nil {
		return
	}

	c.err = c.w.Write(record)
	if c.err != nil {
		return
	}

	c.w.Flush()
	c.err = c.w.Error()
}

// Err returns the first error met while writing.
func (c *CSVWriter) Err() error {
	return c.err
}
