package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/hierarchy"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// ScheduleInput holds the optional planning fields of projects and tasks
type ScheduleInput struct {
	EstimatedStartDate utils.Optional[time.Time]
	EstimatedEndDate   utils.Optional[time.Time]
	ActualStartDate    utils.Optional[time.Time]
	ActualEndDate      utils.Optional[time.Time]
	EstimatedEffort    utils.Optional[uint16]
	ActualEffort       utils.Optional[uint16]
}

func (in ScheduleInput) apply(s *models.Schedule) {
	in.EstimatedStartDate.Apply(&s.EstimatedStartDate)
	in.EstimatedEndDate.Apply(&s.EstimatedEndDate)
	in.ActualStartDate.Apply(&s.ActualStartDate)
	in.ActualEndDate.Apply(&s.ActualEndDate)
	in.EstimatedEffort.Apply(&s.EstimatedEffort)
	in.ActualEffort.Apply(&s.ActualEffort)
}

// WorkItemInput holds the fields projects and tasks have in common
type WorkItemInput struct {
	Title       *string
	Detail      *string
	WorkspaceID *uint64
	CategoryID  *uint64
	StatusID    utils.Optional[uint64]
	PriorityID  utils.Optional[uint64]
	ParentID    utils.Optional[uint64]
	IsVisible   *bool
	TagIDs      *[]uint64
	Schedule    ScheduleInput
}

func (in WorkItemInput) validateCreate() error {
	if _, err := requireText("title", in.Title); err != nil {
		return err
	}
	if in.WorkspaceID == nil {
		return required("workspace")
	}
	if in.CategoryID == nil {
		return required("category")
	}
	return nil
}

// ProjectInput holds the writable project fields
type ProjectInput struct {
	WorkItemInput
}

func (in ProjectInput) apply(p *models.Project) error {
	if in.Title != nil {
		title, err := requireTitle(in.Title, MaxProjectTitleLength)
		if err != nil {
			return err
		}
		p.Title = title
	}
	if in.Detail != nil {
		p.Detail = *in.Detail
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	in.StatusID.Apply(&p.StatusID)
	in.PriorityID.Apply(&p.PriorityID)
	in.ParentID.Apply(&p.ParentID)
	if in.IsVisible != nil {
		p.IsVisible = *in.IsVisible
	}
	in.Schedule.apply(&p.Schedule)
	return nil
}

// ProjectService handles project business logic
type ProjectService struct {
	store *repository.Store
}

// NewProjectService creates a new ProjectService
func NewProjectService(store *repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

// List returns the owner's projects matching filter
func (s *ProjectService) List(ctx context.Context, owner string, filter repository.ListFilter) ([]models.Project, int64, error) {
	projects, total, err := s.store.Projects.List(ctx, owner, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get returns one of the owner's projects with its tags
func (s *ProjectService) Get(ctx context.Context, owner string, id uint64) (*models.Project, error) {
	project, err := s.store.Projects.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return project, nil
}

// Create adds a project. New projects are visible unless told otherwise.
func (s *ProjectService) Create(ctx context.Context, owner string, in ProjectInput) (*models.Project, error) {
	if err := in.validateCreate(); err != nil {
		return nil, err
	}

	project := &models.Project{IsVisible: true}
	if err := in.apply(project); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
		if err != nil {
			return err
		}
		project.WorkspaceID = ws.ID

		tags, err := validateProject(ctx, tx, owner, project, in.TagIDs)
		if err != nil {
			return err
		}
		project.Tags = tags
		return tx.Projects.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update changes a project and pushes its visibility down to the tasks
// linked to it and, for a root project, to its descendants.
func (s *ProjectService) Update(ctx context.Context, owner string, id uint64, in ProjectInput) (*models.Project, error) {
	var project *models.Project
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		project, err = tx.Projects.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if err := in.apply(project); err != nil {
			return err
		}
		if in.WorkspaceID != nil {
			ws, err := resolveWorkspace(ctx, tx, owner, *in.WorkspaceID)
			if err != nil {
				return err
			}
			project.WorkspaceID = ws.ID
		}

		tags, err := validateProject(ctx, tx, owner, project, in.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Projects.Update(ctx, project); err != nil {
			return err
		}
		if in.TagIDs != nil {
			if err := tx.Projects.ReplaceTags(ctx, project, tags); err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		return propagateProject(ctx, tx, project)
	})
	if err != nil {
		return nil, updateError("update project", err)
	}
	return project, nil
}

// Delete removes a project and its linked tasks. Child projects become roots.
func (s *ProjectService) Delete(ctx context.Context, owner string, id uint64) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		project, err := tx.Projects.FindByID(ctx, owner, id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		return tx.Projects.Delete(ctx, project.ID)
	})
}

// Hierarchy returns the whole project tree the given project belongs to
func (s *ProjectService) Hierarchy(ctx context.Context, owner string, id uint64) (hierarchy.Branch[*models.Project], error) {
	project, err := s.Get(ctx, owner, id)
	if err != nil {
		return hierarchy.Branch[*models.Project]{}, err
	}
	return hierarchy.Hierarchy(ctx, s.store.Projects.Get, s.store.Projects.ListChildren, project)
}

// validateProject checks every reference of project and returns the resolved
// tags when tagIDs is set.
func validateProject(ctx context.Context, tx *repository.Store, owner string, project *models.Project, tagIDs *[]uint64) ([]models.Tag, error) {
	tags, err := validateWorkItem(ctx, tx, owner, project, workItemRefs{
		CategoryID: project.CategoryID,
		StatusID:   project.StatusID,
		PriorityID: project.PriorityID,
		TagIDs:     tagIDs,
	})
	if err != nil {
		return nil, err
	}

	if project.ParentID == nil {
		return tags, nil
	}
	parent, err := resolve(ctx, tx.Projects.FindByID, owner, "parent", *project.ParentID)
	if err != nil {
		return nil, err
	}
	if err := hierarchy.ValidateParent(project, parent); err != nil {
		return nil, err
	}
	if err := hierarchy.ValidateAncestry(ctx, tx.Projects.Get, project, parent); err != nil {
		return nil, err
	}
	return tags, nil
}

// propagateProject copies the visibility of a saved project to its linked
// tasks. A root project first hands it to every descendant project, then the
// tasks linked to any of them are synced in one parents-first pass. A
// descendant that fails its checks keeps its stored state and the rest of
// the write goes through.
func propagateProject(ctx context.Context, tx *repository.Store, project *models.Project) error {
	updated := []*models.Project{project}
	if project.ParentID == nil {
		tree, err := hierarchy.Children(ctx, tx.Projects.ListChildren, project)
		if err != nil {
			return fmt.Errorf("failed to load descendants of project %d: %w", project.ID, err)
		}
		if updated, err = cascadeProjects(ctx, tx, project, tree, updated); err != nil {
			return err
		}
	}
	return syncLinkedTasks(ctx, tx, updated)
}

// cascadeProjects saves each project of tree with its parent's visibility and
// returns updated extended by every project saved. A project that cannot be
// saved is skipped together with its subtree.
func cascadeProjects(ctx context.Context, tx *repository.Store, parent *models.Project, tree hierarchy.Tree[*models.Project], updated []*models.Project) ([]*models.Project, error) {
	for _, branch := range tree {
		child := branch.Node
		child.IsVisible = parent.IsVisible

		err := tx.SavePoint(ctx, fmt.Sprintf("cascade_project_%d", child.ID), func() error {
			if err := hierarchy.ValidateParent(child, parent); err != nil {
				return err
			}
			return tx.Projects.Update(ctx, child)
		})
		if err != nil {
			if errors.Is(err, repository.ErrSavePoint) {
				return nil, err
			}
			log.Printf("Skipped cascade to project %d: %v", child.ID, err)
			continue
		}

		updated = append(updated, child)
		if updated, err = cascadeProjects(ctx, tx, child, branch.Children, updated); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// syncLinkedTasks gives every task linked to one of projects the visibility
// of its project. Parents are saved before their children and children are
// checked against the state their parent was left in.
func syncLinkedTasks(ctx context.Context, tx *repository.Store, projects []*models.Project) error {
	visibility := make(map[uint64]bool, len(projects))
	var tasks []*models.Task
	for _, project := range projects {
		visibility[project.ID] = project.IsVisible
		linked, err := tx.Tasks.ListByProject(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to load tasks of project %d: %w", project.ID, err)
		}
		tasks = append(tasks, linked...)
	}
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[uint64]*models.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	for _, task := range hierarchy.Flatten(hierarchy.Forest(tasks)) {
		target := visibility[*task.ProjectID]
		if task.IsVisible == target {
			continue
		}

		var parent *models.Task
		if task.ParentID != nil {
			var ok bool
			if parent, ok = byID[*task.ParentID]; !ok {
				var err error
				if parent, err = tx.Tasks.Get(ctx, *task.ParentID); err != nil {
					return fmt.Errorf("failed to load parent of task %d: %w", task.ID, err)
				}
			}
		}

		previous := task.IsVisible
		task.IsVisible = target
		err := tx.SavePoint(ctx, fmt.Sprintf("cascade_task_%d", task.ID), func() error {
			if parent != nil {
				if err := hierarchy.ValidateParent(task, parent); err != nil {
					return err
				}
			}
			return tx.Tasks.Update(ctx, task)
		})
		if err != nil {
			if errors.Is(err, repository.ErrSavePoint) {
				return err
			}
			task.IsVisible = previous
			log.Printf("Skipped visibility sync of task %d: %v", task.ID, err)
		}
	}
	return nil
}
