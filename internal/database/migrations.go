package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// uniqueConstraint is a unique index over expressions. Expressions are written
// for every dialect; MySQL needs each one wrapped as a functional key part.
type uniqueConstraint struct {
	table   string
	name    string
	columns []string
}

// Constraint names are part of the API: clients match on them in error bodies.
const (
	ConstraintWorkspaceName = "unique_lower_workspace_owner_name"
	ConstraintCategoryName  = "unique_lower_category_name_workspace"
	ConstraintTagName       = "unique_lower_tag_name_workspace"
	ConstraintPriorityName  = "unique_lower_priority_name_workspace"
	ConstraintStatusName    = "unique_lower_status_name_workspace"
	ConstraintProjectTitle  = "unique_lower_project_title_category_workspace"
	ConstraintTaskTitle     = "unique_lower_task_title_category_workspace"
)

var uniqueConstraints = []uniqueConstraint{
	{"workspaces", ConstraintWorkspaceName, []string{"lower(name)", "created_by"}},
	{"categories", ConstraintCategoryName, []string{"lower(name)", "workspace_id"}},
	{"tags", ConstraintTagName, []string{"lower(name)", "workspace_id"}},
	{"priorities", ConstraintPriorityName, []string{"lower(name)", "workspace_id"}},
	{"statuses", ConstraintStatusName, []string{"lower(name)", "workspace_id"}},
	{"projects", ConstraintProjectTitle, []string{"lower(title)", "workspace_id", "category_id"}},
	// a task without a project shares the scope of every other project-less task
	{"tasks", ConstraintTaskTitle, []string{"lower(title)", "workspace_id", "category_id", "coalesce(project_id, 0)"}},
}

// AddUniqueConstraints creates the case-insensitive unique indexes that
// AutoMigrate cannot express.
func AddUniqueConstraints(db *gorm.DB) error {
	dialect := db.Dialector.Name()

	for _, uc := range uniqueConstraints {
		if db.Migrator().HasIndex(uc.table, uc.name) {
			continue
		}

		parts := make([]string, len(uc.columns))
		for i, col := range uc.columns {
			if dialect == "mysql" && strings.Contains(col, "(") {
				col = "(" + col + ")"
			}
			parts[i] = col
		}

		sql := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)", uc.name, uc.table, strings.Join(parts, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", uc.name, err)
		}

		log.Printf("Created unique index %s on %s", uc.name, uc.table)
	}

	return nil
}
