package services

import (
	"context"

	"github.com/taskdesk/taskdesk-api/internal/logger"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

// UserLister defines the listing operation for users.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserService handles user listing.
type UserService struct {
	reader UserLister
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserLister) *UserService {
	return &UserService{reader: reader}
}

// List returns all users. Password hashes stay on the records but are never
// serialized in responses.
func (svc *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}
