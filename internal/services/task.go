package services

import (
	"context"

	"github.com/taskdesk/taskdesk-api/internal/logger"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Save(ctx context.Context, candidate models.TaskCandidate) (*models.TaskDB, error)
}

// TaskReader defines read-only operations for tasks.
type TaskReader interface {
	List(ctx context.Context) ([]models.TaskDB, error)
}

// AssigneeReader resolves task assignees by identifier.
type AssigneeReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// TaskService handles task creation and listing.
type TaskService struct {
	writer    TaskWriter
	reader    TaskReader
	assignees AssigneeReader
	events    EventWriter
}

// NewTaskService creates a new TaskService instance. events may be nil, in
// which case task events are not published.
func NewTaskService(writer TaskWriter, reader TaskReader, assignees AssigneeReader, events EventWriter) *TaskService {
	return &TaskService{
		writer:    writer,
		reader:    reader,
		assignees: assignees,
		events:    events,
	}
}

// Create persists a new task and returns it with the assignee relationship
// resolved. The assignee must reference an existing user.
func (svc *TaskService) Create(ctx context.Context, candidate models.TaskCandidate) (*models.TaskDB, error) {
	assignee, err := svc.assignees.GetByID(ctx, candidate.AssignedToUserID)
	if err != nil {
		logger.Log.Errorw("failed to resolve assignee", "err", err)
		return nil, err
	}
	if assignee == nil {
		logger.Log.Errorw("assignee does not exist", "assigned_to_user_id", candidate.AssignedToUserID)
		return nil, ErrAssigneeNotFound
	}

	task, err := svc.writer.Save(ctx, candidate)
	if err != nil {
		if isForeignKeyViolation(err) {
			logger.Log.Errorw("assignee does not exist", "assigned_to_user_id", candidate.AssignedToUserID)
			return nil, ErrAssigneeNotFound
		}
		logger.Log.Errorw("failed to save task", "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.events, "task.created", task.ID)

	return task, nil
}

// List returns all tasks with their assignees resolved.
func (svc *TaskService) List(ctx context.Context) ([]models.TaskDB, error) {
	tasks, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list tasks", "err", err)
		return nil, err
	}
	return tasks, nil
}
