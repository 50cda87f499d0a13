package api

import (
	"github.com/yourname/exercisetracker/internal"
	"github.com/yourname/exercisetracker/internal/storage"
)

type App interface {
	Logger() internal.Logger
	UserRepo() storage.UserRepository
	ExerciseRepo() storage.ExerciseRepository
}

type app struct {
	logger internal.Logger
	store  storage.Store
}

// NewApp wires a single store into both repositories.
func NewApp(logger internal.Logger, store storage.Store) App {
	return &app{logger: logger, store: store}
}

func (a *app) Logger() internal.Logger                  { return a.logger }
func (a *app) UserRepo() storage.UserRepository         { return a.store }
func (a *app) ExerciseRepo() storage.ExerciseRepository { return a.store }
