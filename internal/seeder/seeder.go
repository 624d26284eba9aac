// Package seeder loads seed modules into a document store and clears them
// again.
//
// Seeding walks modules and their collections in registry order. Clearing
// walks both in reverse, so dependents are removed before what they depend
// on.
package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/masbusiness/business-os/internal/config"
	"github.com/masbusiness/business-os/internal/repository"
	"github.com/masbusiness/business-os/internal/seeddata"
)

var (
	ErrDeclined = errors.New("seeding cancelled")
	ErrNoStore  = errors.New("no document store configured")
)

type Options struct {
	Modules []string
	Reset   bool
	DryRun  bool
	Verbose bool
	Force   bool
}

// Confirmer asks the operator to approve a destructive run.
type Confirmer func(ctx context.Context, prompt string) (bool, error)

type CollectionResult struct {
	Module     string
	Collection string
	Count      int
}

type Summary struct {
	RunID   string
	DryRun  bool
	Written int
	Cleared int
	Seeded  []CollectionResult
	Wiped   []CollectionResult
}

type Seed struct {
	Config   *config.Config
	Registry *seeddata.Registry
	Store    repository.Store
	Logger   *zerolog.Logger
	Out      io.Writer
	Confirm  Confirmer
	Now      func() time.Time
}

// New returns a Seed writing progress to stdout. store may be nil for dry
// runs.
func New(cfg *config.Config, registry *seeddata.Registry, store repository.Store, logger *zerolog.Logger) *Seed {
	return &Seed{
		Config:   cfg,
		Registry: registry,
		Store:    store,
		Logger:   logger,
		Out:      os.Stdout,
		Now:      time.Now,
	}
}

func (s *Seed) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.Out, format, args...)
}

// Run seeds the selected modules, clearing them first when opts.Reset is set.
// Nothing is rolled back on failure: collections handled before the error
// keep their new state.
func (s *Seed) Run(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), DryRun: opts.DryRun}
	log := s.Logger.With().Str("run_id", summary.RunID).Logger()

	if err := s.Config.Validate(); err != nil {
		return summary, err
	}

	if s.Config.IsProduction && !opts.Force && !opts.DryRun {
		ok, err := s.confirm(ctx, opts)
		if err != nil {
			return summary, fmt.Errorf("confirmation: %w", err)
		}
		if !ok {
			log.Info().Msg("seeding declined by operator")
			return summary, ErrDeclined
		}
	}

	modules, err := s.Registry.Select(opts.Modules)
	if err != nil {
		return summary, err
	}

	if !opts.DryRun && s.Store == nil {
		return summary, ErrNoStore
	}

	mode := ""
	if opts.DryRun {
		mode = " (dry run)"
	}
	s.printf("Seeding project %s [%s]%s\n", s.Config.ProjectID, s.Config.Env, mode)
	log.Info().
		Strs("modules", lo.Map(modules, func(m seeddata.SeedModule, _ int) string { return m.Name })).
		Bool("reset", opts.Reset).
		Bool("dry_run", opts.DryRun).
		Msg("seed run started")

	if opts.Reset {
		if err := s.clear(ctx, modules, opts, &summary, &log); err != nil {
			return summary, err
		}
	}

	if err := s.seed(ctx, modules, opts, &summary, &log); err != nil {
		return summary, err
	}

	if opts.DryRun {
		s.printf("Dry run complete: total=%d records, cleared=%d collections, nothing written\n",
			summary.Written, len(summary.Wiped))
	} else {
		s.printf("Seeding complete: total=%d records, cleared=%d documents\n", summary.Written, summary.Cleared)
	}
	log.Info().Int("written", summary.Written).Int("cleared", summary.Cleared).Msg("seed run finished")
	return summary, nil
}

func (s *Seed) confirm(ctx context.Context, opts Options) (bool, error) {
	if s.Confirm == nil {
		return false, nil
	}
	action := "seed"
	if opts.Reset {
		action = "clear and reseed"
	}
	prompt := fmt.Sprintf("You are about to %s project %s in %s. Continue?", action, s.Config.ProjectID, s.Config.Env)
	return s.Confirm(ctx, prompt)
}

func (s *Seed) clear(ctx context.Context, modules []seeddata.SeedModule, opts Options, summary *Summary, log *zerolog.Logger) error {
	var clearer *Clearer
	if !opts.DryRun {
		clearer = NewClearer(s.Store)
	}

	for _, m := range reversed(modules) {
		s.printf("Clearing module %s\n", m.Name)
		for _, c := range reversed(m.Collections) {
			if opts.DryRun {
				s.printf("  - %s: would clear collection\n", c.Name)
				summary.Wiped = append(summary.Wiped, CollectionResult{Module: m.Name, Collection: c.Name})
				continue
			}

			n, err := clearer.ClearCollection(ctx, c.Name)
			if err != nil {
				return fmt.Errorf("clear module %s: %w", m.Name, err)
			}
			s.printf("  - %s: cleared %d documents\n", c.Name, n)
			log.Debug().Str("collection", c.Name).Int("deleted", n).Msg("collection cleared")
			summary.Cleared += n
			summary.Wiped = append(summary.Wiped, CollectionResult{Module: m.Name, Collection: c.Name, Count: n})
		}
	}
	return nil
}

func (s *Seed) seed(ctx context.Context, modules []seeddata.SeedModule, opts Options, summary *Summary, log *zerolog.Logger) error {
	var writer *Writer
	if !opts.DryRun {
		writer = NewWriter(s.Store, s.Config.Seed.Actor, s.Now)
	}

	for _, m := range modules {
		s.printf("Seeding module %s (%s)\n", m.Name, m.Description)
		for _, c := range m.Collections {
			if opts.Verbose && len(c.Records) > 0 {
				s.printSample(c)
			}

			n := len(c.Records)
			if opts.DryRun {
				s.printf("  - %s: would write %d records\n", c.Name, n)
			} else {
				var err error
				n, err = writer.WriteCollection(ctx, c.Name, c.Records)
				if err != nil {
					return fmt.Errorf("seed module %s: %w", m.Name, err)
				}
				s.printf("  - %s: wrote %d records\n", c.Name, n)
				log.Debug().Str("collection", c.Name).Int("written", n).Msg("collection seeded")
			}

			summary.Written += n
			summary.Seeded = append(summary.Seeded, CollectionResult{Module: m.Name, Collection: c.Name, Count: n})
		}
	}
	return nil
}

func (s *Seed) printSample(c seeddata.SeedCollection) {
	sample, err := json.MarshalIndent(c.Records[0], "      ", "  ")
	if err != nil {
		s.Logger.Warn().Err(err).Str("collection", c.Name).Msg("cannot render sample record")
		return
	}
	s.printf("    sample %s: %s\n", c.Name, sample)
}

func reversed[T any](items []T) []T {
	return lo.Reverse(slices.Clone(items))
}
