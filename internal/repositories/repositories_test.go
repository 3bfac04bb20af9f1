package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/repositories"
	"skillmap/portfolio-api/internal/testutil"
)

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, repositories.Page{Skip: 0, Limit: 100}, repositories.Page{}.Normalize())
	assert.Equal(t, repositories.Page{Skip: 0, Limit: 10}, repositories.Page{Skip: -3, Limit: 10}.Normalize())
	assert.Equal(t, repositories.Page{Skip: 5, Limit: repositories.MaxLimit}, repositories.Page{Skip: 5, Limit: 5000}.Normalize())
}

func TestSkillMapRepository_CreateAndList(t *testing.T) {
	repo := repositories.NewSkillMapRepository(testutil.NewTestDB(t))

	empty, err := repo.List(repositories.Page{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, category := range []string{"backend", "frontend", "data"} {
		require.NoError(t, repo.Create(&models.SkillMap{
			Skills:   []string{"go", "sql"},
			Category: category,
			Date:     "2024-01-01",
		}))
	}

	all, err := repo.List(repositories.Page{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "backend", all[0].Category)
	assert.Equal(t, []string{"go", "sql"}, all[0].Skills)

	page, err := repo.List(repositories.Page{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "frontend", page[0].Category)
}

func TestRubricRepository_FindDetailOrdersChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	rubrics := repositories.NewRubricRepository(db)
	skills := repositories.NewSkillRepository(db)
	levels := repositories.NewLevelRepository(db)
	criteria := repositories.NewCriteriaRepository(db)

	rubric := &models.RubricScore{Name: "Backend"}
	require.NoError(t, rubrics.Create(rubric))

	second := &models.Skill{RubricID: rubric.ID, Name: "Testing", DisplayOrder: 2}
	first := &models.Skill{RubricID: rubric.ID, Name: "Go", DisplayOrder: 1}
	require.NoError(t, skills.Create(second))
	require.NoError(t, skills.Create(first))

	senior := &models.Level{RubricID: rubric.ID, Name: "Senior", Rank: 3}
	junior := &models.Level{RubricID: rubric.ID, Name: "Junior", Rank: 1}
	require.NoError(t, levels.Create(senior))
	require.NoError(t, levels.Create(junior))

	require.NoError(t, criteria.Create(&models.Criteria{SkillID: first.ID, LevelID: junior.ID, Description: "writes functions"}))

	detail, err := rubrics.FindDetail(rubric.ID)
	require.NoError(t, err)
	require.Len(t, detail.Skills, 2)
	assert.Equal(t, "Go", detail.Skills[0].Name)
	assert.Equal(t, "Testing", detail.Skills[1].Name)
	require.Len(t, detail.Skills[0].Criteria, 1)
	assert.Equal(t, "writes functions", detail.Skills[0].Criteria[0].Description)
	require.Len(t, detail.Levels, 2)
	assert.Equal(t, "Junior", detail.Levels[0].Name)

	exists, err := rubrics.Exists(rubric.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRubricRepository_NotFound(t *testing.T) {
	repo := repositories.NewRubricRepository(testutil.NewTestDB(t))

	_, err := repo.FindByID(42)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	_, err = repo.FindDetail(42)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	assert.True(t, errors.Is(repo.Delete(42), repositories.ErrNotFound))

	exists, err := repo.Exists(42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRubricRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	rubrics := repositories.NewRubricRepository(db)
	skills := repositories.NewSkillRepository(db)
	levels := repositories.NewLevelRepository(db)
	criteria := repositories.NewCriteriaRepository(db)

	keep := &models.RubricScore{Name: "Keep"}
	drop := &models.RubricScore{Name: "Drop"}
	require.NoError(t, rubrics.Create(keep))
	require.NoError(t, rubrics.Create(drop))

	for _, r := range []*models.RubricScore{keep, drop} {
		skill := &models.Skill{RubricID: r.ID, Name: "Go"}
		level := &models.Level{RubricID: r.ID, Name: "L1", Rank: 1}
		require.NoError(t, skills.Create(skill))
		require.NoError(t, levels.Create(level))
		require.NoError(t, criteria.Create(&models.Criteria{SkillID: skill.ID, LevelID: level.ID, Description: r.Name}))
	}

	require.NoError(t, rubrics.Delete(drop.ID))

	remaining, err := rubrics.List(repositories.Page{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Keep", remaining[0].Name)

	allSkills, err := skills.List(repositories.Page{})
	require.NoError(t, err)
	require.Len(t, allSkills, 1)
	assert.Equal(t, keep.ID, allSkills[0].RubricID)

	allLevels, err := levels.List(repositories.Page{})
	require.NoError(t, err)
	assert.Len(t, allLevels, 1)

	allCriteria, err := criteria.List(repositories.Page{})
	require.NoError(t, err)
	require.Len(t, allCriteria, 1)
	assert.Equal(t, "Keep", allCriteria[0].Description)
}
