package service

import (
	"context"
	"errors"

	"github.com/yourname/exercisetracker/internal"
	"github.com/yourname/exercisetracker/internal/observability"
	"github.com/yourname/exercisetracker/internal/storage"
)

type NewUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

func ValidateNewUserRequest(req *NewUserRequest) error {
	return validateStruct(req)
}

// CreateUser registers req.Username, returning internal.ErrUsernameTaken when
// it already exists. The lookup and insert are separate store calls; the
// store's unique index catches registrations racing between them.
func CreateUser(ctx context.Context, users storage.UserRepository, req *NewUserRequest) (*internal.User, error) {
	if err := ValidateNewUserRequest(req); err != nil {
		return nil, err
	}
	if _, err := users.FindUserByUsername(ctx, req.Username); err == nil {
		observability.RecordUsernameConflict()
		return nil, internal.ErrUsernameTaken
	} else if !errors.Is(err, internal.ErrUserNotFound) {
		return nil, err
	}

	user := &internal.User{Username: req.Username}
	if err := users.InsertUser(ctx, user); err != nil {
		if errors.Is(err, internal.ErrUsernameTaken) {
			observability.RecordUsernameConflict()
		}
		return nil, err
	}
	observability.RecordUserCreated()
	return user, nil
}
