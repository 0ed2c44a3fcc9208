package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hhscout-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db.Pool))
	return db
}

func intp(v int) *int { return &v }

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))
}

func TestDefaultProjectSeeded(t *testing.T) {
	db := openTestDB(t)

	p, err := db.GetProject(context.Background(), DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Default Project", p.Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	gross := true
	v := domain.Vacancy{
		ID:                "101",
		Name:              "Marketing Lead",
		URL:               "https://hh.ru/vacancy/101",
		SalaryFrom:        intp(120000),
		SalaryCurrency:    "RUR",
		SalaryGross:       &gross,
		Experience:        "От 1 года до 3 лет",
		Description:       "builds the budget",
		KeySkills:         []string{"Excel", "Excel", "SQL"},
		ProfessionalRoles: []string{"Маркетолог"},
		FullText:          "Marketing Lead builds the budget Excel Excel SQL",
	}

	require.NoError(t, db.SaveVacancies(ctx, DefaultProjectID, []domain.Vacancy{v}))

	got, err := db.LoadVacancies(ctx, DefaultProjectID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, v, got[0])
}

func TestSaveReplacesSkills(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	v := domain.Vacancy{ID: "7", KeySkills: []string{"Go", "Go"}}
	require.NoError(t, db.SaveVacancies(ctx, DefaultProjectID, []domain.Vacancy{v}))

	// Re-collection of the same vacancy must not stack old skills.
	v.KeySkills = []string{"Go"}
	require.NoError(t, db.SaveVacancies(ctx, DefaultProjectID, []domain.Vacancy{v}))

	got, err := db.LoadVacancies(ctx, DefaultProjectID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Go"}, got[0].KeySkills)
}

func TestProjectsIsolateVacancies(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	other, err := db.CreateProject(ctx, "go jobs", "golang")
	require.NoError(t, err)

	require.NoError(t, db.SaveVacancies(ctx, DefaultProjectID, []domain.Vacancy{{ID: "1"}}))
	require.NoError(t, db.SaveVacancies(ctx, other, []domain.Vacancy{{ID: "1"}, {ID: "2"}}))

	n, err := db.CountVacancies(ctx, DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = db.CountVacancies(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProjectCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.CreateProject(ctx, "remote go", "golang remote")
	require.NoError(t, err)

	name := "remote golang"
	require.NoError(t, db.UpdateProject(ctx, id, &name, nil))

	p, err := db.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "remote golang", p.Name)
	assert.Equal(t, "golang remote", p.Query)

	list, err := db.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2) // default + created

	require.NoError(t, db.DeleteProject(ctx, id))
	_, err = db.GetProject(ctx, id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDefaultProjectUndeletable(t *testing.T) {
	db := openTestDB(t)
	err := db.DeleteProject(context.Background(), DefaultProjectID)
	assert.ErrorIs(t, err, ErrDefaultProject)
}

func TestDeleteMissingProject(t *testing.T) {
	db := openTestDB(t)
	err := db.DeleteProject(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
