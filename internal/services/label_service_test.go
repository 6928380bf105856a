package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

func TestLabelService_CRUD(t *testing.T) {
	env := setupTestEnv(t)

	priority, err := env.priorities.Create(env.ctx, env.owner, LabelInput{
		WorkspaceID: &env.ws.ID,
		LabelFields: models.LabelFields{Name: ptr("high"), Order: ptr[int16](1)},
	})
	require.NoError(t, err)
	assert.Equal(t, env.ws.ID, priority.WorkspaceID)

	updated, err := env.priorities.Update(env.ctx, env.owner, priority.ID, LabelInput{
		LabelFields: models.LabelFields{Description: ptr("do first")},
	})
	require.NoError(t, err)
	assert.Equal(t, "high", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "do first", *updated.Description)

	items, total, err := env.priorities.List(env.ctx, env.owner, repository.ListFilter{WorkspaceID: &env.ws.ID, Pagination: utils.NewPaginationParams(1, 20)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	require.NoError(t, env.priorities.Delete(env.ctx, env.owner, priority.ID))
	_, err = env.priorities.Get(env.ctx, env.owner, priority.ID)
	require.ErrorIs(t, err, ErrPriorityNotFound)
}

func TestLabelService_NameUniqueCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)
	other := env.workspace(t, "other")

	_, err := env.tags.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID, LabelFields: models.LabelFields{Name: ptr("Urgent")}})
	require.NoError(t, err)

	_, err = env.tags.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID, LabelFields: models.LabelFields{Name: ptr("urgent")}})
	requireValidation(t, err, `Constraint "`+database.ConstraintTagName+`" is violated.`)

	_, err = env.tags.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &other.ID, LabelFields: models.LabelFields{Name: ptr("urgent")}})
	require.NoError(t, err)
}

func TestLabelService_RequiredFields(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.statuses.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID})
	requireValidation(t, err, `Field "name" is required.`)

	_, err = env.statuses.Create(env.ctx, env.owner, LabelInput{LabelFields: models.LabelFields{Name: ptr("todo")}})
	requireValidation(t, err, `Field "workspace" is required.`)

	_, err = env.statuses.Update(env.ctx, env.owner, 999, LabelInput{LabelFields: models.LabelFields{Name: ptr("todo")}})
	require.ErrorIs(t, err, ErrStatusNotFound)
}

func TestLabelService_DeleteEffects(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")

	status, err := env.statuses.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID, LabelFields: models.LabelFields{Name: ptr("todo")}})
	require.NoError(t, err)
	priority, err := env.priorities.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID, LabelFields: models.LabelFields{Name: ptr("low")}})
	require.NoError(t, err)

	withStatus, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("with status"), WorkspaceID: &env.ws.ID, CategoryID: &work.ID, StatusID: utils.Some(status.ID),
	}})
	require.NoError(t, err)
	withPriority, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("with priority"), WorkspaceID: &env.ws.ID, CategoryID: &work.ID, PriorityID: utils.Some(priority.ID),
	}})
	require.NoError(t, err)

	require.NoError(t, env.priorities.Delete(env.ctx, env.owner, priority.ID))
	assert.Nil(t, env.reloadProject(t, withPriority.ID).PriorityID)

	require.NoError(t, env.statuses.Delete(env.ctx, env.owner, status.ID))
	_, err = env.projects.Get(env.ctx, env.owner, withStatus.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}
