package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/taskdesk/taskdesk-api/internal/logger"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

// taskColumns selects task rows with the assignee joined in, aliased so that
// sqlx scans the user into the nested AssignedToUser struct.
const taskColumns = `
	t.id, t.title, t.description, t.due_date, t.is_completed, t.assigned_to_user_id,
	u.id           AS "assigned_to_user.id",
	u.username     AS "assigned_to_user.username",
	u.email        AS "assigned_to_user.email",
	u.created_at   AS "assigned_to_user.created_at",
	u.full_name    AS "assigned_to_user.full_name",
	u.birth_date   AS "assigned_to_user.birth_date",
	u.gender       AS "assigned_to_user.gender",
	u.position     AS "assigned_to_user.position",
	u.department   AS "assigned_to_user.department",
	u.phone_number AS "assigned_to_user.phone_number",
	u.photo_path   AS "assigned_to_user.photo_path"`

type TaskReadRepository struct {
	db *sqlx.DB
}

func NewTaskReadRepository(db *sqlx.DB) *TaskReadRepository {
	return &TaskReadRepository{db: db}
}

// List returns all tasks ordered by identifier, each with its assignee
// resolved.
func (r *TaskReadRepository) List(ctx context.Context) ([]models.TaskDB, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to_user_id
		ORDER BY t.id
	`

	tasks := make([]models.TaskDB, 0)
	err := r.db.SelectContext(ctx, &tasks, query)

	logger.Log.Infow("task list",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(tasks),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

type TaskWriteRepository struct {
	db *sqlx.DB
}

func NewTaskWriteRepository(db *sqlx.DB) *TaskWriteRepository {
	return &TaskWriteRepository{db: db}
}

// Save inserts a new task and returns the stored record with the assignee
// relationship resolved. A foreign-key violation on the assignee propagates
// as the driver's error for the caller to classify.
func (r *TaskWriteRepository) Save(ctx context.Context, candidate models.TaskCandidate) (*models.TaskDB, error) {
	const insert = `
		INSERT INTO tasks (title, description, due_date, assigned_to_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	args := []any{candidate.Title, candidate.Description, candidate.DueDate, candidate.AssignedToUserID}
	err := r.db.GetContext(ctx, &id, insert, args...)

	logger.Log.Infow("task insert",
		"query", strings.Join(strings.Fields(insert), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to_user_id
		WHERE t.id = $1
	`

	var task models.TaskDB
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		logger.Log.Errorw("task read-back failed", "task_id", id, "error", err)
		return nil, err
	}

	return &task, nil
}
