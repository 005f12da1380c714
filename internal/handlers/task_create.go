package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/taskdesk/taskdesk-api/internal/logger"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
	"github.com/taskdesk/taskdesk-api/internal/validation"
)

// TaskCreator defines the interface that the task creation service must implement.
type TaskCreator interface {
	Create(ctx context.Context, candidate models.TaskCandidate) (*models.TaskDB, error)
}

// CreateTaskRequest represents the JSON body for task creation
// swagger:model CreateTaskRequest
type CreateTaskRequest struct {
	// Title
	// required: true
	// default: Prepare the quarterly report
	Title string `json:"title" validate:"required"`

	// Description
	Description *string `json:"description,omitempty"`

	// Due date
	DueDate *time.Time `json:"dueDate,omitempty"`

	// Identifier of the user the task is assigned to
	// required: true
	AssignedToUserID int64 `json:"assignedToUserId" validate:"gt=0"`
}

// NewCreateTaskHandler returns an HTTP handler for task creation. The created
// task is returned with its assignee fully resolved.
// @Summary Create a task
// @Description Creates a task assigned to an existing user.
// @Tags tasks
// @Accept json
// @Produce json
// @Param createTaskRequest body handlers.CreateTaskRequest true "Task creation request"
// @Success 201 {object} models.TaskDB "Created task with resolved assignee"
// @Failure 400 {object} handlers.ErrorResponse "Missing title, or missing or unknown assignee"
// @Router /api/tasks [post]
func NewCreateTaskHandler(svc TaskCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTaskRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		if violations := validation.Check(req); len(violations) > 0 {
			writeError(w, http.StatusBadRequest, strings.Join(violations, "; "))
			return
		}

		task, err := svc.Create(r.Context(), models.TaskCandidate{
			Title:            req.Title,
			Description:      req.Description,
			DueDate:          req.DueDate,
			AssignedToUserID: req.AssignedToUserID,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAssigneeNotFound):
				writeError(w, http.StatusBadRequest, "Assigned user does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, task)
	}
}
