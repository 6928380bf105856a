package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/hierarchy"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

func (e *testEnv) reloadProject(t *testing.T, id uint64) *models.Project {
	t.Helper()
	p, err := e.projects.Get(e.ctx, e.owner, id)
	require.NoError(t, err)
	return p
}

func (e *testEnv) reloadTask(t *testing.T, id uint64) *models.Task {
	t.Helper()
	task, err := e.tasks.Get(e.ctx, e.owner, id)
	require.NoError(t, err)
	return task
}

func TestProjectService_CreateDefaults(t *testing.T) {
	env := setupTestEnv(t)
	category := env.category(t, env.ws, "work")

	project := env.project(t, category, "launch", nil)
	assert.True(t, project.IsVisible)
	assert.NotEmpty(t, project.UUID)
	assert.Equal(t, env.ws.ID, project.WorkspaceID)
}

func TestProjectService_RequiredFields(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{Title: ptr("x"), WorkspaceID: &env.ws.ID}})
	requireValidation(t, err, `Field "category" is required.`)

	_, err = env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{WorkspaceID: &env.ws.ID}})
	requireValidation(t, err, `Field "title" is required.`)
}

func TestProjectService_ScopeChecks(t *testing.T) {
	env := setupTestEnv(t)
	other := env.workspace(t, "other")
	localCategory := env.category(t, env.ws, "local")
	foreignCategory := env.category(t, other, "foreign")

	foreignStatus, err := env.statuses.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &other.ID, LabelFields: models.LabelFields{Name: ptr("todo")}})
	require.NoError(t, err)
	foreignTag, err := env.tags.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &other.ID, LabelFields: models.LabelFields{Name: ptr("urgent")}})
	require.NoError(t, err)

	_, err = env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("a"), WorkspaceID: &env.ws.ID, CategoryID: &foreignCategory.ID,
	}})
	requireValidation(t, err, hierarchy.MsgScopeMismatch)

	_, err = env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("b"), WorkspaceID: &env.ws.ID, CategoryID: &localCategory.ID, StatusID: utils.Some(foreignStatus.ID),
	}})
	requireValidation(t, err, hierarchy.MsgScopeMismatch)

	_, err = env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("c"), WorkspaceID: &env.ws.ID, CategoryID: &localCategory.ID, TagIDs: &[]uint64{foreignTag.ID},
	}})
	requireValidation(t, err, hierarchy.MsgTagScopeMismatch)

	_, err = env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("d"), WorkspaceID: &env.ws.ID, CategoryID: &localCategory.ID, TagIDs: &[]uint64{12345},
	}})
	requireValidation(t, err, "Invalid tag 12345 - object does not exist.")
}

func TestProjectService_ParentChecks(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	home := env.category(t, env.ws, "home")
	parent := env.project(t, work, "parent", nil)

	_, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("other category"), WorkspaceID: &env.ws.ID, CategoryID: &home.ID, ParentID: utils.Some(parent.ID),
	}})
	requireValidation(t, err, hierarchy.MsgCategoryMismatch)

	_, err = env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("hidden"), WorkspaceID: &env.ws.ID, CategoryID: &work.ID, ParentID: utils.Some(parent.ID), IsVisible: ptr(false),
	}})
	requireValidation(t, err, hierarchy.MsgVisibilityMismatch)

	_, err = env.projects.Update(env.ctx, env.owner, parent.ID, ProjectInput{WorkItemInput{ParentID: utils.Some(parent.ID)}})
	requireValidation(t, err, hierarchy.MsgSelfParent)

	child := env.project(t, work, "child", parent)
	_, err = env.projects.Update(env.ctx, env.owner, parent.ID, ProjectInput{WorkItemInput{ParentID: utils.Some(child.ID)}})
	requireValidation(t, err, hierarchy.MsgDescendantParent)
}

func TestProjectService_VisibilityCascades(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")

	root := env.project(t, work, "root", nil)
	child := env.project(t, work, "child", root)
	grandchild := env.project(t, work, "grandchild", child)
	unrelated := env.project(t, work, "unrelated", nil)

	rootTask := env.task(t, work, "root task", root, nil)
	childTask := env.task(t, work, "child task", child, nil)
	subtask := env.task(t, work, "subtask", child, childTask)

	updated, err := env.projects.Update(env.ctx, env.owner, root.ID, ProjectInput{WorkItemInput{IsVisible: ptr(false)}})
	require.NoError(t, err)
	assert.False(t, updated.IsVisible)

	for _, id := range []uint64{child.ID, grandchild.ID} {
		assert.False(t, env.reloadProject(t, id).IsVisible, "project %d", id)
	}
	for _, id := range []uint64{rootTask.ID, childTask.ID, subtask.ID} {
		assert.False(t, env.reloadTask(t, id).IsVisible, "task %d", id)
	}
	assert.True(t, env.reloadProject(t, unrelated.ID).IsVisible)

	_, err = env.projects.Update(env.ctx, env.owner, root.ID, ProjectInput{WorkItemInput{IsVisible: ptr(true)}})
	require.NoError(t, err)
	assert.True(t, env.reloadProject(t, grandchild.ID).IsVisible)
	assert.True(t, env.reloadTask(t, subtask.ID).IsVisible)
}

func TestProjectService_NonRootOnlySyncsOwnTasks(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")

	root := env.project(t, work, "root", nil)
	child := env.project(t, work, "child", root)
	childTask := env.task(t, work, "child task", child, nil)

	// a child must keep its parent's visibility
	_, err := env.projects.Update(env.ctx, env.owner, child.ID, ProjectInput{WorkItemInput{IsVisible: ptr(false)}})
	requireValidation(t, err, hierarchy.MsgVisibilityMismatch)

	_, err = env.projects.Update(env.ctx, env.owner, child.ID, ProjectInput{WorkItemInput{Detail: ptr("notes")}})
	require.NoError(t, err)
	assert.True(t, env.reloadTask(t, childTask.ID).IsVisible)
}

func TestProjectService_CascadeSyncsTasksAcrossProjects(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")

	root := env.project(t, work, "root", nil)
	child := env.project(t, work, "child", root)

	// the subtask is linked to the root project, its parent to the child project
	parentTask := env.task(t, work, "parent task", child, nil)
	subtask := env.task(t, work, "subtask", root, parentTask)

	_, err := env.projects.Update(env.ctx, env.owner, root.ID, ProjectInput{WorkItemInput{IsVisible: ptr(false)}})
	require.NoError(t, err)

	assert.False(t, env.reloadProject(t, child.ID).IsVisible)
	assert.False(t, env.reloadTask(t, parentTask.ID).IsVisible)
	assert.False(t, env.reloadTask(t, subtask.ID).IsVisible)
}

func TestProjectService_InconsistentLinkedTaskIsSkipped(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")

	project := env.project(t, work, "launch", nil)
	loose := env.task(t, work, "loose", nil, nil)
	linked := env.task(t, work, "linked", project, loose)
	other := env.task(t, work, "other", project, nil)

	updated, err := env.projects.Update(env.ctx, env.owner, project.ID, ProjectInput{WorkItemInput{IsVisible: ptr(false)}})
	require.NoError(t, err)
	assert.False(t, updated.IsVisible)

	assert.False(t, env.reloadProject(t, project.ID).IsVisible)
	assert.False(t, env.reloadTask(t, other.ID).IsVisible)
	// its parent is not linked to the project, so it keeps the parent's visibility
	assert.True(t, env.reloadTask(t, linked.ID).IsVisible)
	assert.True(t, env.reloadTask(t, loose.ID).IsVisible)
}

func TestProjectService_FailedDescendantIsSkipped(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	home := env.category(t, env.ws, "home")

	root := env.project(t, work, "root", nil)
	child := env.project(t, work, "child", root)
	grandchild := env.project(t, work, "grandchild", child)
	childTask := env.task(t, work, "child task", child, nil)

	// the child still sits in "work", so its cascade save fails
	_, err := env.projects.Update(env.ctx, env.owner, root.ID, ProjectInput{WorkItemInput{
		CategoryID: &home.ID,
		IsVisible:  ptr(false),
	}})
	require.NoError(t, err)

	reloaded := env.reloadProject(t, root.ID)
	assert.Equal(t, home.ID, reloaded.CategoryID)
	assert.False(t, reloaded.IsVisible)

	skipped := env.reloadProject(t, child.ID)
	assert.Equal(t, work.ID, skipped.CategoryID)
	assert.True(t, skipped.IsVisible)
	assert.True(t, env.reloadProject(t, grandchild.ID).IsVisible)
	assert.True(t, env.reloadTask(t, childTask.ID).IsVisible)
}

func TestProjectService_TitleLength(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")

	_, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr(strings.Repeat("a", MaxProjectTitleLength+1)), WorkspaceID: &env.ws.ID, CategoryID: &work.ID,
	}})
	requireValidation(t, err, `Field "title" may not be longer than 200 characters.`)

	project, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr(strings.Repeat("é", MaxProjectTitleLength)), WorkspaceID: &env.ws.ID, CategoryID: &work.ID,
	}})
	require.NoError(t, err)

	_, err = env.projects.Update(env.ctx, env.owner, project.ID, ProjectInput{WorkItemInput{
		Title: ptr(strings.Repeat("b", MaxProjectTitleLength+1)),
	}})
	requireValidation(t, err, `Field "title" may not be longer than 200 characters.`)
}

func TestProjectService_Tags(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	urgent, err := env.tags.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID, LabelFields: models.LabelFields{Name: ptr("urgent")}})
	require.NoError(t, err)
	later, err := env.tags.Create(env.ctx, env.owner, LabelInput{WorkspaceID: &env.ws.ID, LabelFields: models.LabelFields{Name: ptr("later")}})
	require.NoError(t, err)

	project, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("tagged"), WorkspaceID: &env.ws.ID, CategoryID: &work.ID, TagIDs: &[]uint64{urgent.ID, urgent.ID},
	}})
	require.NoError(t, err)
	require.Len(t, env.reloadProject(t, project.ID).Tags, 1)

	_, err = env.projects.Update(env.ctx, env.owner, project.ID, ProjectInput{WorkItemInput{TagIDs: &[]uint64{later.ID}}})
	require.NoError(t, err)
	tags := env.reloadProject(t, project.ID).Tags
	require.Len(t, tags, 1)
	assert.Equal(t, later.ID, tags[0].ID)

	// omitting tags leaves them alone
	_, err = env.projects.Update(env.ctx, env.owner, project.ID, ProjectInput{WorkItemInput{Detail: ptr("x")}})
	require.NoError(t, err)
	assert.Len(t, env.reloadProject(t, project.ID).Tags, 1)

	_, err = env.projects.Update(env.ctx, env.owner, project.ID, ProjectInput{WorkItemInput{TagIDs: &[]uint64{}}})
	require.NoError(t, err)
	assert.Empty(t, env.reloadProject(t, project.ID).Tags)
}

func TestProjectService_TitleUniquePerCategory(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	home := env.category(t, env.ws, "home")
	env.project(t, work, "Launch", nil)

	_, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("launch"), WorkspaceID: &env.ws.ID, CategoryID: &work.ID,
	}})
	requireValidation(t, err, `Constraint "`+database.ConstraintProjectTitle+`" is violated.`)

	env.project(t, home, "launch", nil)
}

func TestProjectService_Schedule(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	end := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	project, err := env.projects.Create(env.ctx, env.owner, ProjectInput{WorkItemInput{
		Title: ptr("planned"), WorkspaceID: &env.ws.ID, CategoryID: &work.ID,
		Schedule: ScheduleInput{EstimatedEndDate: utils.Some(end), EstimatedEffort: utils.Some[uint16](3)},
	}})
	require.NoError(t, err)

	reloaded := env.reloadProject(t, project.ID)
	require.NotNil(t, reloaded.EstimatedEndDate)
	assert.True(t, end.Equal(*reloaded.EstimatedEndDate))
	require.NotNil(t, reloaded.EstimatedEffort)
	assert.EqualValues(t, 3, *reloaded.EstimatedEffort)

	_, err = env.projects.Update(env.ctx, env.owner, project.ID, ProjectInput{WorkItemInput{
		Schedule: ScheduleInput{EstimatedEndDate: utils.Null[time.Time]()},
	}})
	require.NoError(t, err)
	reloaded = env.reloadProject(t, project.ID)
	assert.Nil(t, reloaded.EstimatedEndDate)
	assert.NotNil(t, reloaded.EstimatedEffort)
}

func TestProjectService_DeleteRemovesTasksAndDetachesChildren(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	root := env.project(t, work, "root", nil)
	child := env.project(t, work, "child", root)
	task := env.task(t, work, "task", root, nil)

	require.NoError(t, env.projects.Delete(env.ctx, env.owner, root.ID))

	_, err := env.tasks.Get(env.ctx, env.owner, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
	assert.Nil(t, env.reloadProject(t, child.ID).ParentID)
}

func TestProjectService_Hierarchy(t *testing.T) {
	env := setupTestEnv(t)
	work := env.category(t, env.ws, "work")
	root := env.project(t, work, "root", nil)
	child := env.project(t, work, "child", root)
	env.project(t, work, "second child", root)

	branch, err := env.projects.Hierarchy(env.ctx, env.owner, child.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, branch.Node.ID)
	assert.Len(t, branch.Children, 2)
}
