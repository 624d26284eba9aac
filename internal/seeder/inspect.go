package seeder

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/masbusiness/business-os/internal/constants"
)

const rolesCollection = "roles"

type ListRow struct {
	Module       string
	Collection   string
	Dependencies []string
	Records      int
}

// List describes the selected modules without touching the store.
func (s *Seed) List(names []string) ([]ListRow, int, error) {
	modules, err := s.Registry.Select(names)
	if err != nil {
		return nil, 0, err
	}

	var (
		rows  []ListRow
		total int
	)
	for _, m := range modules {
		for _, c := range m.Collections {
			rows = append(rows, ListRow{
				Module:       m.Name,
				Collection:   c.Name,
				Dependencies: c.Dependencies,
				Records:      len(c.Records),
			})
			total += len(c.Records)
		}
	}
	return rows, total, nil
}

type StatusRow struct {
	Module     string
	Collection string
	Documents  int
}

func (r StatusRow) Empty() bool {
	return r.Documents == 0
}

func (r StatusRow) String() string {
	if r.Empty() {
		return "empty"
	}
	return fmt.Sprintf("seeded (%d docs)", r.Documents)
}

// Status counts the documents currently stored for each selected collection.
func (s *Seed) Status(ctx context.Context, names []string) ([]StatusRow, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if s.Store == nil {
		return nil, ErrNoStore
	}

	modules, err := s.Registry.Select(names)
	if err != nil {
		return nil, err
	}

	var rows []StatusRow
	for _, m := range modules {
		for _, c := range m.Collections {
			n, err := s.Store.Count(ctx, c.Name)
			if err != nil {
				return nil, fmt.Errorf("status %s/%s: %w", m.Name, c.Name, err)
			}
			rows = append(rows, StatusRow{Module: m.Name, Collection: c.Name, Documents: n})
		}
	}
	return rows, nil
}

type PermissionRow struct {
	Permission  string
	Description string
	Roles       []string
}

// Permissions lists every known permission with the seeded roles that
// grant it, in catalog order.
func (s *Seed) Permissions() []PermissionRow {
	granted := map[string][]string{}
	for _, m := range s.Registry.Modules() {
		for _, c := range m.Collections {
			if c.Name != rolesCollection {
				continue
			}
			for _, r := range c.Records {
				perms, _ := r["permissions"].([]any)
				for _, p := range perms {
					if name, ok := p.(string); ok {
						granted[name] = append(granted[name], r.ID())
					}
				}
			}
		}
	}

	return lo.Map(constants.Permissions, func(p constants.Permission, _ int) PermissionRow {
		return PermissionRow{
			Permission:  p.Permission,
			Description: p.Description,
			Roles:       granted[p.Permission],
		}
	})
}
