package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-fakephone"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

type rootOptions struct {
	settings
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stderr: stderr}
	env, envErr := loadSettings()
	opts.settings = env

	root := &cobra.Command{
		Use:           "fakephone",
		Short:         "Generate locale specific fake phone numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return envErr
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.Locale, "locale", "l", env.Locale, "locale id, e.g. en_PH (env FAKEPHONE_LOCALE)")
	flags.Int64Var(&opts.Seed, "seed", env.Seed, "random seed, 0 for a random one (env FAKEPHONE_SEED)")
	flags.StringSliceVar(&opts.Plans, "plans", env.Plans, "extra YAML/JSON numbering plan files (env FAKEPHONE_PLANS)")
	flags.BoolVar(&opts.Strict, "strict", env.Strict, "disable the calling code fallback (env FAKEPHONE_STRICT)")
	flags.IntVar(&opts.Extensions, "extensions", env.Extensions, "percent of phone_number results with an extension (env FAKEPHONE_EXTENSIONS)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", env.Verbose, "debug logging (env FAKEPHONE_VERBOSE)")

	root.AddCommand(
		newGenerateCmd(opts),
		newLocalesCmd(opts),
		newCategoriesCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *rootOptions) registry() (*fakephone.Registry, error) {
	if len(o.Plans) == 0 {
		return fakephone.DefaultRegistry()
	}
	return fakephone.NewRegistry(fakephone.WithRegistryPlanFiles(o.Plans...))
}

func (o *rootOptions) generatorOptions() []fakephone.Option {
	var opts []fakephone.Option
	if o.Extensions != 0 {
		opts = append(opts, fakephone.WithExtensions(o.Extensions))
	}
	if o.Strict {
		opts = append(opts, fakephone.WithStrictLocales())
	}
	return opts
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		count   int
		workers int
		perSec  float64
	)

	cmd := &cobra.Command{
		Use:   "generate [category]",
		Short: "Print random numbers of a category (default phone_number)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(root.stderr, root.Verbose).With("run", uuid.NewString())

			category := fakephone.CategoryPhoneNumber
			if len(args) == 1 {
				category = fakephone.ParseCategory(args[0])
			}
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			if perSec < 0 {
				return fmt.Errorf("rate must not be negative, got %v", perSec)
			}

			registry, err := root.registry()
			if err != nil {
				return fmt.Errorf("failed to load numbering plans: %w", err)
			}

			logger.Debug("Generating numbers",
				"locale", root.Locale,
				"category", category,
				"count", count,
				"workers", workers,
				"seed", root.Seed,
				"rate", perSec,
			)

			b := batch{
				registry: registry,
				options:  root.generatorOptions(),
				seed:     root.Seed,
				workers:  workers,
			}
			if perSec > 0 {
				b.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
			}
			numbers, err := b.run(cmd.Context(), root.Locale, category, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, n := range numbers {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many numbers to print")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.GOMAXPROCS(0), "parallel workers")
	cmd.Flags().Float64Var(&perSec, "rate", 0, "maximum numbers per second, 0 for unlimited")
	return cmd
}

func newLocalesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List registered locales with their rule set and calling code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := root.registry()
			if err != nil {
				return fmt.Errorf("failed to load numbering plans: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCALE\tRULE SET\tCODE")
			for _, locale := range registry.Locales() {
				rs, err := registry.RuleSet(locale)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t+%s\n", locale, rs.Key(), rs.CountryCallingCode())
			}
			return tw.Flush()
		},
	}
}

func newCategoriesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories [locale]",
		Short: "List the categories a locale serves",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale := root.Locale
			if len(args) == 1 {
				locale = args[0]
			}

			registry, err := root.registry()
			if err != nil {
				return fmt.Errorf("failed to load numbering plans: %w", err)
			}
			opts := append([]fakephone.Option{fakephone.WithRegistry(registry)}, root.generatorOptions()...)
			gen, err := fakephone.New(opts...)
			if err != nil {
				return err
			}

			categories, err := gen.Categories(locale)
			if err != nil {
				return err
			}
			names := make([]string, len(categories))
			for i, c := range categories {
				names[i] = c.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fakephone %s (%s)\n", version, commit)
		},
	}
}
