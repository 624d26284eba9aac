package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/masbusiness/business-os/factory"
	"github.com/masbusiness/business-os/internal/config"
	"github.com/masbusiness/business-os/internal/seeder"
	"github.com/masbusiness/business-os/pkg/logger"
)

// app carries everything a command needs from the outside world, so tests can
// swap the store and streams.
type app struct {
	loadConfig func() (*config.Config, error)
	build      func(*config.Config, *logger.Logger, factory.Options) (*factory.Factory, func(), error)
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
}

func defaultApp() *app {
	return &app{
		loadConfig: config.New,
		build:      factory.New,
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
}

// Execute runs the seed CLI and returns the process exit code.
func Execute() int {
	return execute(defaultApp(), os.Args[1:])
}

func execute(a *app, args []string) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, seeder.ErrDeclined) {
			_, _ = fmt.Fprintln(a.out, "Seeding cancelled, nothing was changed.")
			return 0
		}
		_, _ = fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

// session is a configured seeder plus the cleanup for its store.
type session struct {
	seed    *seeder.Seed
	cleanup func()
}

func (a *app) open(cmd *cobra.Command, verbose, withStore bool) (*session, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(cfg, verbose, a.errOut)

	f, cleanup, err := a.build(cfg, log, factory.Options{WithStore: withStore})
	if err != nil {
		return nil, err
	}

	s := seeder.New(cfg, f.Registry, f.Store, log.Logger)
	s.Out = cmd.OutOrStdout()
	s.Confirm = terminalConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	return &session{seed: s, cleanup: cleanup}, nil
}

func newRootCmd(a *app) *cobra.Command {
	var (
		modules []string
		opts    seeder.Options
	)

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the MAS Business OS document store",
		Long: "Loads the demo data set into the configured document store.\n\n" +
			"Modules are seeded in registry order and, with --reset, cleared in reverse order first.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Modules = modules

			sess, err := a.open(cmd, opts.Verbose, !opts.DryRun)
			if err != nil {
				return err
			}
			defer sess.cleanup()

			_, err = sess.seed.Run(cmd.Context(), opts)
			return err
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&modules, "modules", nil, "Comma separated modules to use (default: all)")
	rootCmd.Flags().BoolVar(&opts.Reset, "reset", false, "Clear the selected modules before seeding")
	rootCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print what would change without writing")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print a sample record per collection and debug logs")
	rootCmd.Flags().BoolVar(&opts.Force, "force", false, "Skip the production confirmation prompt")

	rootCmd.AddCommand(newListCmd(a, &modules))
	rootCmd.AddCommand(newStatusCmd(a, &modules))

	return rootCmd
}
