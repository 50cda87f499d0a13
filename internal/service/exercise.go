package service

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/exercisetracker/internal"
	"github.com/yourname/exercisetracker/internal/observability"
	"github.com/yourname/exercisetracker/internal/storage"
)

// now is swapped in tests.
var now = time.Now

// NumberString holds a numeric field that may arrive as a JSON number or
// string, or as a form value.
type NumberString string

func (n *NumberString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberString(strings.TrimSpace(s))
		return nil
	}
	*n = NumberString(data)
	return nil
}

type AddExerciseRequest struct {
	UserID      string       `json:"userId" form:"userId" validate:"required"`
	Description string       `json:"description" form:"description" validate:"required"`
	Duration    NumberString `json:"duration" form:"duration" validate:"required"`
	Date        string       `json:"date" form:"date"`
}

// Float parses n as a finite decimal or exponent-form number.
func (n NumberString) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func ValidateAddExerciseRequest(req *AddExerciseRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if _, err := req.Duration.Float(); err != nil {
		return internal.NewValidationError("duration", "duration must be a number, got "+strconv.Quote(string(req.Duration)))
	}
	if strings.TrimSpace(req.Date) != "" {
		if _, _, err := internal.ParseDate(req.Date); err != nil {
			return internal.NewValidationError("date", "date must be YYYY-MM-DD or an ISO-8601 timestamp, got "+strconv.Quote(req.Date))
		}
	}
	return nil
}

// AddExercise records an exercise for an existing user. It returns
// internal.ErrUserNotFound, without writing anything, when req.UserID is
// unknown.
func AddExercise(ctx context.Context, users storage.UserRepository, exercises storage.ExerciseRepository, req *AddExerciseRequest) (*internal.Exercise, *internal.User, error) {
	if err := ValidateAddExerciseRequest(req); err != nil {
		return nil, nil, err
	}
	user, err := users.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}

	duration, _ := req.Duration.Float()
	date := now().UTC()
	if strings.TrimSpace(req.Date) != "" {
		date, _, _ = internal.ParseDate(req.Date)
	}

	ex := &internal.Exercise{
		UserID:      user.ID,
		Description: req.Description,
		Duration:    duration,
		Date:        date,
		CreatedAt:   now().UTC(),
	}
	if err := exercises.InsertExercise(ctx, ex); err != nil {
		return nil, nil, err
	}
	observability.RecordExerciseCreated()
	return ex, user, nil
}

type LogRequest struct {
	UserID string `form:"userId" validate:"required"`
	From   string `form:"from"`
	To     string `form:"to"`
	Limit  string `form:"limit"`
}

// Filter validates req and converts it into a storage filter. A date-only
// "to" bound covers the whole of that day.
func (req *LogRequest) Filter() (storage.ExerciseFilter, error) {
	f := storage.ExerciseFilter{UserID: req.UserID}
	if err := validateStruct(req); err != nil {
		return f, err
	}
	if s := strings.TrimSpace(req.From); s != "" {
		from, _, err := internal.ParseDate(s)
		if err != nil {
			return f, internal.NewValidationError("from", "from must be YYYY-MM-DD or an ISO-8601 timestamp, got "+strconv.Quote(req.From))
		}
		f.From = &from
	}
	if s := strings.TrimSpace(req.To); s != "" {
		to, dateOnly, err := internal.ParseDate(s)
		if err != nil {
			return f, internal.NewValidationError("to", "to must be YYYY-MM-DD or an ISO-8601 timestamp, got "+strconv.Quote(req.To))
		}
		if dateOnly {
			to = internal.EndOfDay(to)
		}
		f.To = &to
	}
	if s := strings.TrimSpace(req.Limit); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			return f, internal.NewValidationError("limit", "limit must be a non-negative integer, got "+strconv.Quote(req.Limit))
		}
		f.Limit = limit
	}
	return f, nil
}

// ExerciseLog returns the user and the exercises matching req.
func ExerciseLog(ctx context.Context, users storage.UserRepository, exercises storage.ExerciseRepository, req *LogRequest) (*internal.User, []internal.Exercise, error) {
	filter, err := req.Filter()
	if err != nil {
		return nil, nil, err
	}
	user, err := users.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}
	filter.UserID = user.ID
	logs, err := exercises.FindExercises(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return user, logs, nil
}
