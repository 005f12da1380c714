package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/taskdesk/taskdesk-api/internal/models"
	"github.com/taskdesk/taskdesk-api/internal/services"
)

func TestTaskService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockTaskWriter(ctrl)
	mockReader := services.NewMockTaskReader(ctrl)
	mockAssignees := services.NewMockAssigneeReader(ctrl)

	svc := services.NewTaskService(mockWriter, mockReader, mockAssignees, nil)

	assignee := &models.UserDB{ID: 3, Username: "alice", Email: "alice@example.com"}
	candidate := models.TaskCandidate{Title: "t1", AssignedToUserID: 3}

	tests := []struct {
		name        string
		assignee    *models.UserDB
		assigneeErr error
		saved       *models.TaskDB
		saveErr     error
		wantErr     error
	}{
		{
			name:     "successful creation",
			assignee: assignee,
			saved: &models.TaskDB{
				ID:               1,
				Title:            "t1",
				AssignedToUserID: 3,
				AssignedToUser:   *assignee,
			},
		},
		{
			name:    "assignee does not exist",
			wantErr: services.ErrAssigneeNotFound,
		},
		{
			name:        "assignee lookup error",
			assigneeErr: errors.New("db error"),
			wantErr:     errors.New("db error"),
		},
		{
			name:     "foreign key violation on insert",
			assignee: assignee,
			saveErr:  &pgconn.PgError{Code: "23503"},
			wantErr:  services.ErrAssigneeNotFound,
		},
		{
			name:     "writer error",
			assignee: assignee,
			saveErr:  errors.New("save error"),
			wantErr:  errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAssignees.EXPECT().
				GetByID(gomock.Any(), candidate.AssignedToUserID).
				Return(tt.assignee, tt.assigneeErr)

			if tt.assignee != nil && tt.assigneeErr == nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), candidate).
					Return(tt.saved, tt.saveErr)
			}

			task, err := svc.Create(context.Background(), candidate)
			if tt.wantErr != nil {
				assert.Nil(t, task)
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.saved, task)
				assert.Equal(t, "alice", task.AssignedToUser.Username)
			}
		})
	}
}

func TestTaskService_Create_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockTaskWriter(ctrl)
	mockReader := services.NewMockTaskReader(ctrl)
	mockAssignees := services.NewMockAssigneeReader(ctrl)
	mockEvents := services.NewMockEventWriter(ctrl)

	svc := services.NewTaskService(mockWriter, mockReader, mockAssignees, mockEvents)

	candidate := models.TaskCandidate{Title: "t1", AssignedToUserID: 3}

	mockAssignees.EXPECT().
		GetByID(gomock.Any(), int64(3)).
		Return(&models.UserDB{ID: 3}, nil)
	mockWriter.EXPECT().
		Save(gomock.Any(), candidate).
		Return(&models.TaskDB{ID: 9, Title: "t1", AssignedToUserID: 3}, nil)
	mockEvents.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		Return(nil)

	task, err := svc.Create(context.Background(), candidate)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), task.ID)
}

func TestTaskService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockTaskWriter(ctrl)
	mockReader := services.NewMockTaskReader(ctrl)
	mockAssignees := services.NewMockAssigneeReader(ctrl)

	svc := services.NewTaskService(mockWriter, mockReader, mockAssignees, nil)

	t.Run("success", func(t *testing.T) {
		tasks := []models.TaskDB{
			{ID: 1, Title: "t1", AssignedToUserID: 3},
			{ID: 2, Title: "t2", AssignedToUserID: 3},
		}
		mockReader.EXPECT().List(gomock.Any()).Return(tasks, nil)

		got, err := svc.List(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))

		got, err := svc.List(context.Background())
		assert.Nil(t, got)
		assert.EqualError(t, err, "db error")
	})
}
