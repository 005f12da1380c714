package handlers

import (
	"context"
	"net/http"

	"github.com/taskdesk/taskdesk-api/internal/logger"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

// TaskLister defines the interface that the task listing service must implement.
type TaskLister interface {
	List(ctx context.Context) ([]models.TaskDB, error)
}

// NewListTasksHandler returns an HTTP handler listing all tasks with their
// assignees resolved.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} models.TaskDB "All tasks with resolved assignees"
// @Failure 500 {object} handlers.ErrorResponse "Store failure"
// @Router /api/tasks [get]
func NewListTasksHandler(svc TaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, tasks)
	}
}
