package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hitset/pkg/hitset"
	"github.com/matzehuels/hitset/pkg/set"
)

// demoInstance is the example solved by "hitset demo".
func demoInstance() hitset.Instance[string] {
	return hitset.Instance[string]{set.Of("a", "b"), set.Of("b", "c")}
}

// demoCommand creates the demo command, which solves a fixed example
// without touching the cache.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Solve the example instance {a, b}, {b, c}",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst := demoInstance()
			cover, err := hitset.Solve(inst)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Out, "Sets:   %s\nAnswer: %s\n", formatInstance(inst), cover)
			return nil
		},
	}
}

// formatInstance renders inst as "[{a, b}, {b, c}]".
func formatInstance(inst hitset.Instance[string]) string {
	s := "["
	for i, x := range inst {
		if i > 0 {
			s += ", "
		}
		s += x.String()
	}
	return s + "]"
}
