package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

var taskTestColumns = []string{
	"id", "title", "description", "due_date", "is_completed", "assigned_to_user_id",
	"assigned_to_user.id", "assigned_to_user.username", "assigned_to_user.email",
	"assigned_to_user.created_at", "assigned_to_user.full_name", "assigned_to_user.birth_date",
	"assigned_to_user.gender", "assigned_to_user.position", "assigned_to_user.department",
	"assigned_to_user.phone_number", "assigned_to_user.photo_path",
}

func taskRow(id int64, title string, assigneeID int64, assigneeName string) []driverValue {
	return []driverValue{
		id, title, nil, nil, false, assigneeID,
		assigneeID, assigneeName, assigneeName + "@example.com",
		time.Unix(0, 0), nil, nil, nil, nil, nil, nil, nil,
	}
}

func TestTaskWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskWriteRepository(db)

	candidate := models.TaskCandidate{Title: "t1", AssignedToUserID: 3}

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("t1", nil, nil, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("FROM tasks t").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(taskTestColumns).
			AddRow(taskRow(1, "t1", 3, "alice")...))

	task, err := repo.Save(context.Background(), candidate)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "t1", task.Title)
	assert.False(t, task.IsCompleted)
	assert.Equal(t, int64(3), task.AssignedToUserID)

	// The assignee relationship is resolved, not just the foreign key.
	assert.Equal(t, int64(3), task.AssignedToUser.ID)
	assert.Equal(t, "alice", task.AssignedToUser.Username)
	assert.Equal(t, "alice@example.com", task.AssignedToUser.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskWriteRepository_Save_InsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskWriteRepository(db)

	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnError(errors.New("connection refused"))

	task, err := repo.Save(context.Background(), models.TaskCandidate{Title: "t1", AssignedToUserID: 3})
	assert.Nil(t, task)
	assert.EqualError(t, err, "connection refused")
}

func TestTaskReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskReadRepository(db)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(taskTestColumns).
			AddRow(taskRow(1, "t1", 3, "alice")...).
			AddRow(taskRow(2, "t2", 4, "bob")...)
	}

	mock.ExpectQuery("FROM tasks t").WillReturnRows(rows())
	mock.ExpectQuery("FROM tasks t").WillReturnRows(rows())

	first, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, "alice", first[0].AssignedToUser.Username)
	assert.Equal(t, "bob", first[1].AssignedToUser.Username)

	// Idempotent with no intervening writes.
	second, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTaskReadRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskReadRepository(db)

	mock.ExpectQuery("FROM tasks t").
		WillReturnRows(sqlmock.NewRows(taskTestColumns))

	tasks, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}
