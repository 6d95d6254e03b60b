package community

import (
	"fmt"
	"io"
)

// Describe writes everyone's role, home and appointments. The output grows
// with the population and is only practical for small models.
func (w *World) Describe(out io.Writer) error {
	for i := range w.people {
		p := &w.people[i]

		_, err := fmt.Fprintf(out, "%s %s %s\n",
			p.Name(), p.Role.Name, p.State)
		if err != nil {
			return err
		}

		if p.Home != NoPlace {
			_, err = fmt.Fprintf(out, " %s\n", w.places[p.Home].Name())
			if err != nil {
				return err
			}
		}

		for _, a := range p.Appointments {
			_, err = fmt.Fprintf(out, " %s(%s)\n",
				w.places[a.Place].Name(), a.Schedule)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
