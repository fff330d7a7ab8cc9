package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/hitset"
	hio "github.com/matzehuels/hitset/pkg/io"
	"github.com/matzehuels/hitset/pkg/runner"
	"github.com/matzehuels/hitset/pkg/set"
)

// solveFlags holds flags for the solve command.
type solveFlags struct {
	branch    string
	parallel  int
	reduce    bool
	skipEmpty bool
	verify    bool
	output    string
	dot       string
	noCache   bool
	refresh   bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Find a minimum hitting set of an instance file",
		Long: `Solve reads a collection of sets from a JSON or TOML file and prints a
smallest set of elements that intersects every one of them.

JSON instances look like {"sets": [["a", "b"], ["b", "c"]]}; TOML instances
like sets = [["a", "b"], ["b", "c"]].`,
		Example: `  # Solve and print the cover
  hitset solve instance.json

  # Branch on the smallest set, use 4 workers, and write the result
  hitset solve instance.toml --branch smallest --parallel 4 -o result.json

  # Draw the instance with the cover highlighted
  hitset solve instance.json --dot cover.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.solverOptions(cmd, flags)
			if err != nil {
				return err
			}
			return c.runSolve(cmd, args[0], opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.branch, "branch", "", "branching rule: first or smallest (default first)")
	cmd.Flags().IntVar(&flags.parallel, "parallel", 1, "goroutines exploring the root branches (0 or 1 = sequential)")
	cmd.Flags().BoolVar(&flags.reduce, "reduce", false, "drop sets that contain another set before searching")
	cmd.Flags().BoolVar(&flags.skipEmpty, "skip-empty", false, "ignore empty sets instead of failing")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "cross-check the cover size by brute force (small instances)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the result as JSON to this file")
	cmd.Flags().StringVar(&flags.dot, "dot", "", "draw the instance to this file (.dot or .svg)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the solution cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached solutions and solve again")

	return cmd
}

// solverOptions merges config file values and flags, flags taking precedence.
func (c *CLI) solverOptions(cmd *cobra.Command, flags solveFlags) (hitset.Options, error) {
	opts := hitset.DefaultOptions()

	branch := c.config.Branch
	if cmd.Flags().Changed("branch") {
		branch = flags.branch
	}
	b, err := hitset.ParseBranching(branch)
	if err != nil {
		return opts, err
	}
	opts.Branching = b

	if c.config.Parallel > 0 {
		opts.Parallel = c.config.Parallel
	}
	if cmd.Flags().Changed("parallel") {
		opts.Parallel = flags.parallel
	}
	opts.Reduce = c.config.Reduce
	if cmd.Flags().Changed("reduce") {
		opts.Reduce = flags.reduce
	}
	opts.SkipEmpty = flags.skipEmpty

	logger := c.Logger
	opts.Progress = func(s hitset.Stats) {
		logger.Debug("searching", "explored", s.Explored, "pruned", s.Pruned, "solutions", s.Solutions)
	}
	return opts, opts.Validate()
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts hitset.Options, flags solveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	inst, err := hio.ImportFile(path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d sets from %s", len(inst), filepath.Base(path)))

	r, closeCache := c.newRunner(ctx, flags.noCache)
	defer closeCache()

	var sp *spinner
	if c.spinnerOut != nil && c.Logger.GetLevel() > LogDebug {
		sp = newSpinner(ctx, c.spinnerOut, fmt.Sprintf("Searching %d sets...", len(inst)))
	}
	sp.Start()
	res, err := r.Solve(ctx, inst, runner.Options{
		Solver:  opts,
		Refresh: flags.refresh,
		TTL:     c.config.Cache.TTL.Duration,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	printSets(c.Out, inst, res.Cover)
	printKeyValue(c.Out, "Cover", StyleCover.Render(res.Cover.String()))
	printKeyValue(c.Out, "Size", fmt.Sprint(res.Cover.Len()))
	printStats(c.Out, res.Stats, res.CacheHit)

	if flags.verify {
		if err := c.verify(inst, opts, res.Cover); err != nil {
			return err
		}
	}

	if flags.output != "" {
		if err := hio.ExportResultJSON(hio.NewResult(inst, res.Cover), flags.output); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		printFile(c.Out, flags.output)
	}

	if flags.dot != "" {
		format := runner.FormatSVG
		if strings.EqualFold(filepath.Ext(flags.dot), ".dot") {
			format = runner.FormatDOT
		}
		data, err := r.Render(ctx, inst, res.Cover, format)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := os.WriteFile(flags.dot, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", flags.dot, err)
		}
		printFile(c.Out, flags.dot)
	}
	return nil
}

// verify checks cover against an exhaustive search of the preprocessed
// instance. Instances too large to enumerate are skipped with a warning.
func (c *CLI) verify(inst hitset.Instance[string], opts hitset.Options, cover set.Set[string]) error {
	sets, err := hitset.Preprocess(inst, opts)
	if err != nil {
		return err
	}
	if !hitset.IsCover(sets, cover) {
		return errors.New(errors.ErrCodeInternal, "cover %s misses a set", cover)
	}
	if n := hitset.Universe(sets).Len(); n > hitset.MaxBruteForceElements {
		printWarning(c.Out, "Skipped brute-force check: %d elements exceeds %d", n, hitset.MaxBruteForceElements)
		return nil
	}
	want, err := hitset.BruteForce(sets)
	if err != nil {
		return err
	}
	if want.Len() != cover.Len() {
		return errors.New(errors.ErrCodeInternal,
			"cover %s has %d elements but %s has %d", cover, cover.Len(), want, want.Len())
	}
	printSuccess(c.Out, "Verified minimum by brute force")
	return nil
}
