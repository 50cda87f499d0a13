package storage

import (
	"context"
	"time"

	"github.com/yourname/exercisetracker/internal"
)

// UserRepository stores users. FindUserByID and FindUserByUsername return
// internal.ErrUserNotFound when nothing matches; InsertUser returns
// internal.ErrUsernameTaken when the store rejects a duplicate username.
type UserRepository interface {
	InsertUser(ctx context.Context, user *internal.User) error
	FindUserByID(ctx context.Context, id string) (*internal.User, error)
	FindUserByUsername(ctx context.Context, username string) (*internal.User, error)
	ListUsers(ctx context.Context) ([]internal.User, error)
}

type ExerciseRepository interface {
	InsertExercise(ctx context.Context, ex *internal.Exercise) error
	FindExercises(ctx context.Context, f ExerciseFilter) ([]internal.Exercise, error)
}

// ExerciseFilter selects a user's exercises. From and To are inclusive;
// Limit <= 0 means no limit. Results come back in insertion order.
type ExerciseFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

func (f ExerciseFilter) matches(ex *internal.Exercise) bool {
	if ex.UserID != f.UserID {
		return false
	}
	if f.From != nil && ex.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && ex.Date.After(*f.To) {
		return false
	}
	return true
}

// Store is a backend serving both repositories.
type Store interface {
	UserRepository
	ExerciseRepository
	Close(ctx context.Context) error
}
