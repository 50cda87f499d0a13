package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/exercisetracker/internal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// runStoreContract exercises the repository behaviour every backend must
// share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		s := newStore(t)
		alice := &internal.User{Username: "alice"}
		require.NoError(t, s.InsertUser(ctx, alice))
		assert.NotEmpty(t, alice.ID)

		err := s.InsertUser(ctx, &internal.User{Username: "alice"})
		assert.ErrorIs(t, err, internal.ErrUsernameTaken)

		bob := &internal.User{Username: "Bob Smith"}
		require.NoError(t, s.InsertUser(ctx, bob))

		got, err := s.FindUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		got, err = s.FindUserByUsername(ctx, "Bob Smith")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)

		_, err = s.FindUserByUsername(ctx, "carol")
		assert.ErrorIs(t, err, internal.ErrUserNotFound)
		_, err = s.FindUserByID(ctx, "000000000000000000000000")
		assert.ErrorIs(t, err, internal.ErrUserNotFound)
		_, err = s.FindUserByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, internal.ErrUserNotFound)

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "Bob Smith", users[1].Username)
	})

	t.Run("exercises", func(t *testing.T) {
		s := newStore(t)
		u := &internal.User{Username: "runner"}
		require.NoError(t, s.InsertUser(ctx, u))
		other := &internal.User{Username: "other"}
		require.NoError(t, s.InsertUser(ctx, other))

		for _, e := range []internal.Exercise{
			{UserID: u.ID, Description: "feb", Duration: 30, Date: day(2023, 2, 1)},
			{UserID: u.ID, Description: "jan-1", Duration: 20, Date: day(2023, 1, 1)},
			{UserID: other.ID, Description: "not mine", Duration: 5, Date: day(2023, 1, 10)},
			{UserID: u.ID, Description: "jan-15", Duration: 45.5, Date: day(2023, 1, 15)},
		} {
			e := e
			require.NoError(t, s.InsertExercise(ctx, &e))
			assert.NotEmpty(t, e.ID)
		}

		all, err := s.FindExercises(ctx, ExerciseFilter{UserID: u.ID})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"feb", "jan-1", "jan-15"}, descriptions(all))
		assert.Equal(t, 45.5, all[2].Duration)
		assert.True(t, all[1].Date.Equal(day(2023, 1, 1)))

		from, to := day(2023, 1, 1), day(2023, 1, 31)
		jan, err := s.FindExercises(ctx, ExerciseFilter{UserID: u.ID, From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, []string{"jan-1", "jan-15"}, descriptions(jan))

		limited, err := s.FindExercises(ctx, ExerciseFilter{UserID: u.ID, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"feb"}, descriptions(limited))

		none, err := s.FindExercises(ctx, ExerciseFilter{UserID: u.ID, From: &to, To: &from})
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func descriptions(exs []internal.Exercise) []string {
	out := make([]string, len(exs))
	for i, e := range exs {
		out[i] = e.Description
	}
	return out
}
