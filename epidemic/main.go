// Epidemic simulates the spread of a disease through a synthetic population.
package main

import "github.com/sarchlab/epidemic/epidemic/cmd"

func main() {
	cmd.Execute()
}
