package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yukikurage/workspace-task-api/internal/hierarchy"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// TaskInput holds the writable task fields
type TaskInput struct {
	WorkItemInput
	ProjectID utils.Optional[uint64]
}

func (in TaskInput) apply(t *models.Task) error {
	if in.Title != nil {
		title, err := requireTitle(in.Title, MaxTaskTitleLength)
		if err != nil {
			return err
		}
		t.Title = title
	}
	if in.Detail != nil {
		t.Detail = *in.Detail
	}
	if in.CategoryID != nil {
		t.CategoryID = *in.CategoryID
	}
	in.ProjectID.Apply(&t.ProjectID)
	in.StatusID.Apply(&t.StatusID)
	in.PriorityID.Apply(&t.PriorityID)
	in.ParentID.Apply(&t.ParentID)
	if in.IsVisible != nil {
		t.IsVisible = *in.IsVisible
	}
	in.Schedule.apply(&t.Schedule)
	return nil
}

// TaskService handles task business logic
type TaskService struct {
	store *repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

// List returns the owner's tasks matching filter
func (s *TaskService) List(ctx context.Context, owner string, filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.store.Tasks.List(ctx, owner, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Get returns one of the owner's tasks with its tags
func (s *TaskService) Get(ctx context.Context, owner string, id uint64) (*models.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	return task, nil
}

// Create adds a task. New tasks are visible unless told otherwise.
func (s *TaskService) Create(ctx context.Context, owner string, in TaskInput) (*models.Task, error) {
	if err := in.validateCreate(); err != nil {
		return nil, err
	}

	task := &models.Task{IsVisible: true}
	if err := in.apply(task); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
		if err != nil {
			return err
		}
		task.WorkspaceID = ws.ID

		tags, err := validateTask(ctx, tx, owner, task, in.TagIDs)
		if err != nil {
			return err
		}
		task.Tags = tags
		return tx.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update changes a task. A root task hands its project and visibility down
// to every descendant.
func (s *TaskService) Update(ctx context.Context, owner string, id uint64, in TaskInput) (*models.Task, error) {
	var task *models.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrTaskNotFound)
		}
		if err := in.apply(task); err != nil {
			return err
		}
		if in.WorkspaceID != nil {
			ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
			if err != nil {
				return err
			}
			task.WorkspaceID = ws.ID
		}

		tags, err := validateTask(ctx, tx, owner, task, in.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}
		if in.TagIDs != nil {
			if err := tx.Tasks.ReplaceTags(ctx, task, tags); err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		return propagateTask(ctx, tx, task)
	})
	if err != nil {
		return nil, updateError("update task", err)
	}
	return task, nil
}

// Delete removes a task. Its children become roots.
func (s *TaskService) Delete(ctx context.Context, owner string, id uint64) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrTaskNotFound)
		}
		return tx.Tasks.Delete(ctx, task.ID)
	})
}

// Hierarchy returns the whole task tree the given task belongs to
func (s *TaskService) Hierarchy(ctx context.Context, owner string, id uint64) (hierarchy.Branch[*models.Task], error) {
	task, err := s.Get(ctx, owner, id)
	if err != nil {
		return hierarchy.Branch[*models.Task]{}, err
	}
	return hierarchy.Hierarchy(ctx, s.store.Tasks.Get, s.store.Tasks.ListChildren, task)
}

func validateTask(ctx context.Context, tx *repository.Store, owner string, task *models.Task, tagIDs *[]uint64) ([]models.Tag, error) {
	tags, err := validateWorkItem(ctx, tx, owner, task, workItemRefs{
		CategoryID: task.CategoryID,
		StatusID:   task.StatusID,
		PriorityID: task.PriorityID,
		TagIDs:     tagIDs,
	})
	if err != nil {
		return nil, err
	}

	if task.ProjectID != nil {
		if _, err := resolve(ctx, tx.Projects.FindByID, owner, "project", *task.ProjectID); err != nil {
			return nil, err
		}
	}

	if task.ParentID == nil {
		return tags, nil
	}
	parent, err := resolve(ctx, tx.Tasks.FindByID, owner, "parent", *task.ParentID)
	if err != nil {
		return nil, err
	}
	if err := hierarchy.ValidateParent(task, parent); err != nil {
		return nil, err
	}
	if err := hierarchy.ValidateAncestry(ctx, tx.Tasks.Get, task, parent); err != nil {
		return nil, err
	}
	return tags, nil
}

// propagateTask copies project and visibility of a saved root task to all of
// its descendants. A descendant that cannot take them keeps its stored state,
// as does everything below it.
func propagateTask(ctx context.Context, tx *repository.Store, task *models.Task) error {
	if task.ParentID != nil {
		return nil
	}
	tree, err := hierarchy.Children(ctx, tx.Tasks.ListChildren, task)
	if err != nil {
		return fmt.Errorf("failed to load descendants of task %d: %w", task.ID, err)
	}
	return cascadeTasks(ctx, tx, task, task, tree)
}

func cascadeTasks(ctx context.Context, tx *repository.Store, root, parent *models.Task, tree hierarchy.Tree[*models.Task]) error {
	for _, branch := range tree {
		child := branch.Node
		child.ProjectID = copyID(root.ProjectID)
		child.IsVisible = root.IsVisible

		err := tx.SavePoint(ctx, fmt.Sprintf("cascade_task_%d", child.ID), func() error {
			if err := hierarchy.ValidateParent(child, parent); err != nil {
				return err
			}
			return tx.Tasks.Update(ctx, child)
		})
		if err != nil {
			if errors.Is(err, repository.ErrSavePoint) {
				return err
			}
			log.Printf("Skipped cascade to task %d: %v", child.ID, err)
			continue
		}

		if err := cascadeTasks(ctx, tx, root, child, branch.Children); err != nil {
			return err
		}
	}
	return nil
}

func copyID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
