package response

import (
	"errors"
	"net/http"

	"github.com/yourname/exercisetracker/internal"
)

const internalServerError = "Internal Server Error"

// Plain-text replies for lookups that miss. They go out with 200 to stay
// compatible with existing clients.
const (
	UsernameTaken = "Username already taken!"
	UserNotExist  = "This user does not exist."
	UnknownUserID = "Unknown user id"
)

// Classify maps err to the status and plain-text message sent to the
// client. Validation failures report their first field; AppErrors carry
// their own status; anything else is a 500 whose details stay in the logs.
func Classify(err error) (int, string) {
	var verr *internal.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Error()
	}
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		status := appErr.Code
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = internalServerError
		}
		return status, msg
	}
	return http.StatusInternalServerError, internalServerError
}

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func User(u *internal.User) UserResponse {
	return UserResponse{UserID: u.ID, Username: u.Username}
}

func Users(users []internal.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = User(&users[i])
	}
	return out
}

type ExerciseResponse struct {
	UserID      string  `json:"userId"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

func Exercise(u *internal.User, ex *internal.Exercise) ExerciseResponse {
	return ExerciseResponse{
		UserID:      u.ID,
		Username:    u.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        internal.FormatDate(ex.Date),
	}
}

type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type LogResponse struct {
	UserID   string     `json:"userId"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

func Log(u *internal.User, exercises []internal.Exercise) LogResponse {
	entries := make([]LogEntry, len(exercises))
	for i, ex := range exercises {
		entries[i] = LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        internal.FormatDate(ex.Date),
		}
	}
	return LogResponse{
		UserID:   u.ID,
		Username: u.Username,
		Count:    len(entries),
		Log:      entries,
	}
}
