package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

// respondServiceError maps a service error onto the HTTP response
func respondServiceError(c *gin.Context, err error) {
	if vErr, ok := apierrors.AsValidationError(err); ok {
		apierrors.ValidationFailed(c, vErr)
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		apierrors.NotFound(c, err.Error())
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	apierrors.InternalError(c, "")
}

// pathID parses the :id path parameter. Malformed IDs are treated as missing
// records.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// listFilter reads the workspace, parent and roots query parameters along
// with pagination
func listFilter(c *gin.Context) (repository.ListFilter, bool) {
	filter := repository.ListFilter{Pagination: utils.GetPaginationParams(c)}

	var ok bool
	if filter.WorkspaceID, ok = queryID(c, "workspace"); !ok {
		return filter, false
	}
	if filter.ParentID, ok = queryID(c, "parent"); !ok {
		return filter, false
	}
	filter.RootsOnly = c.Query("roots") == "true"
	return filter, true
}
