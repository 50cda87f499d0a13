package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/exercise/users", "200"))
	ObserveRequest("GET", "/api/exercise/users", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/exercise/users", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveRequestUnmatched(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	ObserveRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestDomainCounters(t *testing.T) {
	u, e, c := testutil.ToFloat64(usersCreated), testutil.ToFloat64(exercisesCreated), testutil.ToFloat64(usernameConflicts)
	RecordUserCreated()
	RecordExerciseCreated()
	RecordExerciseCreated()
	RecordUsernameConflict()
	assert.Equal(t, u+1, testutil.ToFloat64(usersCreated))
	assert.Equal(t, e+2, testutil.ToFloat64(exercisesCreated))
	assert.Equal(t, c+1, testutil.ToFloat64(usernameConflicts))
}
