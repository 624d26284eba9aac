package seeddata

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/masbusiness/business-os/internal/graph"
)

var (
	ErrUnknownModule = errors.New("unknown module")
	ErrNoModules     = errors.New("no modules selected")
	ErrMissingID     = errors.New("record has no id")
	ErrDuplicateID   = errors.New("duplicate record id")
)

// Record is one seed document. It always carries a string "id" which
// becomes the document key.
type Record map[string]any

// ID returns the record's id, or "" when it is missing or not a string.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

type SeedCollection struct {
	Name         string
	Dependencies []string
	Records      []Record
}

type SeedModule struct {
	Name        string
	Description string
	Collections []SeedCollection
}

func (m SeedModule) RecordCount() int {
	return lo.SumBy(m.Collections, func(c SeedCollection) int {
		return len(c.Records)
	})
}

// Registry is the ordered set of seed modules. Its collections form a
// validated dependency graph: every collection comes after the ones it
// depends on, across module boundaries too.
type Registry struct {
	modules []SeedModule
	graph   *graph.Graph
}

// NewRegistry checks record ids and the collection dependency graph of
// modules, in the order given.
func NewRegistry(modules []SeedModule) (*Registry, error) {
	g := graph.New()
	seenModules := map[string]bool{}
	for _, m := range modules {
		if seenModules[m.Name] {
			return nil, fmt.Errorf("duplicate module %s", m.Name)
		}
		seenModules[m.Name] = true

		for _, c := range m.Collections {
			if err := checkIDs(c); err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Name, err)
			}
			if err := g.Add(c.Name, c.Dependencies...); err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Name, err)
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("collection graph: %w", err)
	}

	return &Registry{modules: modules, graph: g}, nil
}

func checkIDs(c SeedCollection) error {
	seen := make(map[string]struct{}, len(c.Records))
	for i, r := range c.Records {
		id := r.ID()
		if id == "" {
			return fmt.Errorf("%w: %s[%d]", ErrMissingID, c.Name, i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateID, c.Name, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (r *Registry) Modules() []SeedModule {
	return slices.Clone(r.modules)
}

func (r *Registry) Names() []string {
	return lo.Map(r.modules, func(m SeedModule, _ int) string {
		return m.Name
	})
}

// Order returns every collection in dependency order.
func (r *Registry) Order() ([]string, error) {
	return r.graph.TopoSort()
}

// Select resolves module names against the registry. A nil slice selects
// every module; a non-nil selection that names nothing is ErrNoModules. The
// result always follows registry order.
func (r *Registry) Select(names []string) ([]SeedModule, error) {
	if names == nil {
		return r.Modules(), nil
	}
	wanted := lo.Uniq(lo.Compact(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})))
	if len(wanted) == 0 {
		return nil, ErrNoModules
	}

	known := r.Names()
	if unknown := lo.Without(wanted, known...); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownModule,
			strings.Join(unknown, ", "), strings.Join(known, ", "))
	}

	return lo.Filter(r.modules, func(m SeedModule, _ int) bool {
		return lo.Contains(wanted, m.Name)
	}), nil
}
