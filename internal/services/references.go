package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"gorm.io/gorm"
)

type ownedFinder[T any] func(ctx context.Context, owner string, id uint64) (*T, error)

// resolve loads a record referenced by a request body. A reference outside
// the owner's scope is reported like a missing one.
func resolve[T any](ctx context.Context, find ownedFinder[T], owner, field string, id uint64) (*T, error) {
	item, err := find(ctx, owner, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalidReference(field, id)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func resolveWorkspace(ctx context.Context, tx *repository.Store, owner string, id uint64) (*models.Workspace, error) {
	return resolve(ctx, tx.Workspaces.FindByID, owner, "workspace", id)
}

// resolveTags loads every referenced tag, rejecting the first unknown ID
func resolveTags(ctx context.Context, tx *repository.Store, owner string, ids []uint64) ([]models.Tag, error) {
	ids = uniqueUint64(ids)
	tags, err := tx.Tags.FindByIDs(ctx, owner, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) == len(ids) {
		return tags, nil
	}

	found := make(map[uint64]struct{}, len(tags))
	for _, tag := range tags {
		found[tag.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, invalidReference("tag", id)
		}
	}
	return tags, nil
}

func tagWorkspaces(tags []models.Tag) []uint64 {
	out := make([]uint64, len(tags))
	for i, tag := range tags {
		out[i] = tag.WorkspaceID
	}
	return out
}

func requireText(field string, value *string) (string, error) {
	if value == nil {
		return "", required(field)
	}
	if strings.TrimSpace(*value) == "" {
		return "", blank(field)
	}
	return *value, nil
}

// requireTitle is requireText for a title column of limit characters
func requireTitle(value *string, limit int) (string, error) {
	title, err := requireText("title", value)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(title) > limit {
		return "", tooLong("title", limit)
	}
	return title, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
