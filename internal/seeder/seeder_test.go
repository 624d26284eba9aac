package seeder

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masbusiness/business-os/internal/config"
	"github.com/masbusiness/business-os/internal/repository"
	"github.com/masbusiness/business-os/internal/seeddata"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:       "development",
		ProjectID: "mas-test",
		Seed:      config.SeedConfig{Actor: "seed-script"},
		IsDev:     true,
	}
}

func newTestSeed(t *testing.T, reg *seeddata.Registry, store repository.Store) (*Seed, *bytes.Buffer) {
	t.Helper()
	nop := zerolog.Nop()
	var out bytes.Buffer
	s := New(testConfig(), reg, store, &nop)
	s.Out = &out
	s.Now = fixedClock
	return s, &out
}

func embeddedRegistry(t *testing.T) *seeddata.Registry {
	t.Helper()
	reg, err := seeddata.Load()
	require.NoError(t, err)
	return reg
}

// twoModuleRegistry has module alpha (a1, a2 -> a1) and module beta
// (b1 -> a1).
func twoModuleRegistry(t *testing.T) *seeddata.Registry {
	t.Helper()
	reg, err := seeddata.NewRegistry([]seeddata.SeedModule{
		{
			Name: "alpha",
			Collections: []seeddata.SeedCollection{
				{Name: "a1", Records: []seeddata.Record{{"id": "a1-1"}}},
				{Name: "a2", Dependencies: []string{"a1"}, Records: []seeddata.Record{{"id": "a2-1"}}},
			},
		},
		{
			Name: "beta",
			Collections: []seeddata.SeedCollection{
				{Name: "b1", Dependencies: []string{"a1"}, Records: []seeddata.Record{{"id": "b1-1"}, {"id": "b1-2"}}},
			},
		},
	})
	require.NoError(t, err)
	return reg
}

func collectionsFor(calls []repository.Call, op repository.CallOp) []string {
	return lo.FilterMap(calls, func(c repository.Call, _ int) (string, bool) {
		return c.Collection, c.Op == op
	})
}

func TestRun_ResetClearsInReverseThenSeedsForward(t *testing.T) {
	store := repository.NewMemoryStore()
	store.Put("a1", "old", nil)
	store.Put("a2", "old", nil)
	store.Put("b1", "old", nil)
	s, out := newTestSeed(t, twoModuleRegistry(t), store)

	summary, err := s.Run(context.Background(), Options{Reset: true})
	require.NoError(t, err)

	calls := store.Calls()
	deletes := collectionsFor(calls, repository.CallDelete)
	commits := collectionsFor(calls, repository.CallCommit)
	assert.Equal(t, []string{"b1", "a2", "a1"}, deletes)
	assert.Equal(t, []string{"a1", "a2", "b1"}, commits)

	lastDelete := lo.LastIndexOf(lo.Map(calls, func(c repository.Call, _ int) repository.CallOp { return c.Op }), repository.CallDelete)
	firstCommit := lo.IndexOf(lo.Map(calls, func(c repository.Call, _ int) repository.CallOp { return c.Op }), repository.CallCommit)
	assert.Less(t, lastDelete, firstCommit)

	assert.Equal(t, 4, summary.Written)
	assert.Equal(t, 3, summary.Cleared)
	assert.NotEmpty(t, summary.RunID)

	_, ok := store.Get("a1", "old")
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Seeding complete: total=4 records, cleared=3 documents")
}

func TestRun_WithoutResetLeavesExistingDocuments(t *testing.T) {
	store := repository.NewMemoryStore()
	store.Put("a1", "old", map[string]any{"kept": true})
	s, _ := newTestSeed(t, twoModuleRegistry(t), store)

	_, err := s.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Empty(t, collectionsFor(store.Calls(), repository.CallDelete))
	_, ok := store.Get("a1", "old")
	assert.True(t, ok)
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	store := repository.NewMemoryStore()
	s, out := newTestSeed(t, embeddedRegistry(t), store)

	summary, err := s.Run(context.Background(), Options{Modules: []string{"hr"}, DryRun: true, Reset: true})
	require.NoError(t, err)

	assert.Empty(t, store.Calls())
	assert.Equal(t, 29, summary.Written)
	assert.True(t, summary.DryRun)
	assert.Len(t, summary.Wiped, 4)
	assert.Contains(t, out.String(), "candidates: would write 15 records")
	assert.Contains(t, out.String(), "total=29")
}

func TestRun_DryRunNeedsNoStore(t *testing.T) {
	s, _ := newTestSeed(t, embeddedRegistry(t), nil)

	summary, err := s.Run(context.Background(), Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 117, summary.Written)
}

func TestRun_CoreModule(t *testing.T) {
	store := repository.NewMemoryStore()
	s, _ := newTestSeed(t, embeddedRegistry(t), store)

	summary, err := s.Run(context.Background(), Options{Modules: []string{"core"}})
	require.NoError(t, err)
	assert.Equal(t, 18, summary.Written)

	commits := collectionsFor(store.Mutations(), repository.CallCommit)
	assert.Equal(t, []string{"organizations", "settings", "departments", "roles"}, commits)

	org, ok := store.Get("organizations", "org-mas")
	require.True(t, ok)
	assert.NotContains(t, org, "id")
	assert.Equal(t, "seed-script", org["createdBy"])
	assert.Equal(t, fixedNow, org["createdAt"])
}

func TestRun_AllModulesFollowRegistryOrder(t *testing.T) {
	store := repository.NewMemoryStore()
	reg := embeddedRegistry(t)
	s, _ := newTestSeed(t, reg, store)

	summary, err := s.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 117, summary.Written)

	order, err := reg.Order()
	require.NoError(t, err)
	assert.Equal(t, order, collectionsFor(store.Calls(), repository.CallCommit))
}

func TestRun_UnknownModule(t *testing.T) {
	store := repository.NewMemoryStore()
	s, _ := newTestSeed(t, embeddedRegistry(t), store)

	_, err := s.Run(context.Background(), Options{Modules: []string{"doesnotexist"}, Reset: true})
	require.ErrorIs(t, err, seeddata.ErrUnknownModule)
	assert.Empty(t, store.Calls())
}

func TestRun_MissingProject(t *testing.T) {
	store := repository.NewMemoryStore()
	s, _ := newTestSeed(t, embeddedRegistry(t), store)
	s.Config.ProjectID = ""

	_, err := s.Run(context.Background(), Options{})
	require.ErrorIs(t, err, config.ErrMissingProject)
	assert.Empty(t, store.Calls())
}

func TestRun_NoStore(t *testing.T) {
	s, _ := newTestSeed(t, embeddedRegistry(t), nil)

	_, err := s.Run(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrNoStore)
}

func productionSeed(t *testing.T, store repository.Store) *Seed {
	t.Helper()
	s, _ := newTestSeed(t, twoModuleRegistry(t), store)
	s.Config.Env = "production"
	s.Config.IsDev = false
	s.Config.IsProduction = true
	return s
}

func TestRun_ProductionConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		store := repository.NewMemoryStore()
		s := productionSeed(t, store)
		var prompt string
		s.Confirm = func(_ context.Context, p string) (bool, error) {
			prompt = p
			return false, nil
		}

		_, err := s.Run(context.Background(), Options{Reset: true})
		require.ErrorIs(t, err, ErrDeclined)
		assert.Empty(t, store.Calls())
		assert.Contains(t, prompt, "clear and reseed project mas-test in production")
	})

	t.Run("no confirmer counts as declined", func(t *testing.T) {
		store := repository.NewMemoryStore()
		s := productionSeed(t, store)

		_, err := s.Run(context.Background(), Options{})
		require.ErrorIs(t, err, ErrDeclined)
		assert.Empty(t, store.Calls())
	})

	t.Run("confirmer error", func(t *testing.T) {
		store := repository.NewMemoryStore()
		s := productionSeed(t, store)
		boom := errors.New("stdin closed")
		s.Confirm = func(context.Context, string) (bool, error) { return false, boom }

		_, err := s.Run(context.Background(), Options{})
		require.ErrorIs(t, err, boom)
		assert.Empty(t, store.Calls())
	})

	t.Run("approved", func(t *testing.T) {
		store := repository.NewMemoryStore()
		s := productionSeed(t, store)
		s.Confirm = func(context.Context, string) (bool, error) { return true, nil }

		summary, err := s.Run(context.Background(), Options{})
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Written)
	})

	t.Run("force skips the prompt", func(t *testing.T) {
		store := repository.NewMemoryStore()
		s := productionSeed(t, store)
		s.Confirm = func(context.Context, string) (bool, error) {
			t.Fatal("confirmation must not be requested")
			return false, nil
		}

		_, err := s.Run(context.Background(), Options{Force: true})
		require.NoError(t, err)
	})

	t.Run("dry run skips the prompt", func(t *testing.T) {
		store := repository.NewMemoryStore()
		s := productionSeed(t, store)

		_, err := s.Run(context.Background(), Options{DryRun: true})
		require.NoError(t, err)
		assert.Empty(t, store.Calls())
	})
}

func TestRun_CommitFailureKeepsEarlierCollections(t *testing.T) {
	store := repository.NewMemoryStore()
	boom := errors.New("deadline exceeded")
	store.FailCommit = func(collection string, _ []repository.Document) error {
		if collection == "b1" {
			return boom
		}
		return nil
	}
	s, _ := newTestSeed(t, twoModuleRegistry(t), store)

	summary, err := s.Run(context.Background(), Options{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed module beta")
	assert.Equal(t, 2, summary.Written)

	_, ok := store.Get("a2", "a2-1")
	assert.True(t, ok)
}

func TestRun_VerbosePrintsSample(t *testing.T) {
	s, out := newTestSeed(t, twoModuleRegistry(t), repository.NewMemoryStore())

	_, err := s.Run(context.Background(), Options{Verbose: true, Modules: []string{"beta"}})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `sample b1: {`)
	assert.Contains(t, out.String(), `"id": "b1-1"`)
}

func TestList(t *testing.T) {
	s, _ := newTestSeed(t, embeddedRegistry(t), nil)

	rows, total, err := s.List([]string{"crm"})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	assert.Equal(t, []ListRow{
		{Module: "crm", Collection: "clients", Records: 5},
		{Module: "crm", Collection: "tickets", Dependencies: []string{"clients", "users"}, Records: 6},
	}, rows)
}

func TestStatus(t *testing.T) {
	store := repository.NewMemoryStore()
	store.Put("clients", "client-1", nil)
	s, _ := newTestSeed(t, embeddedRegistry(t), store)

	rows, err := s.Status(context.Background(), []string{"crm"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "seeded (1 docs)", rows[0].String())
	assert.True(t, rows[1].Empty())
	assert.Equal(t, "empty", rows[1].String())
	assert.Empty(t, store.Mutations())
}

func TestPermissions(t *testing.T) {
	s, _ := newTestSeed(t, embeddedRegistry(t), nil)

	rows := s.Permissions()
	require.Len(t, rows, 15)
	assert.Equal(t, "org:manage", rows[0].Permission)
	assert.NotEmpty(t, rows[0].Description)
	assert.Contains(t, rows[0].Roles, "role-super-admin")

	self, ok := lo.Find(rows, func(r PermissionRow) bool { return r.Permission == "portal:self" })
	require.True(t, ok)
	assert.Equal(t, []string{"role-employee", "role-client", "role-candidate"}, self.Roles)
}
