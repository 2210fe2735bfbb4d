//go:build unit

package session_test

import (
	"testing"
	"time"

	"tarot-sessions/internal/domain/session"
	"tarot-sessions/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, readerID *uuid.UUID, payment session.PaymentState) *session.Session {
	t.Helper()

	spread, err := session.NewSpread("three-card", 3, []string{"past", "present", "future"}, false)
	require.NoError(t, err)

	question, err := session.NewQuestion("What should I focus on?")
	require.NoError(t, err)

	s, err := session.NewSession(uuid.New(), readerID, "rider-waite", spread, question, payment, time.Now())
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		readerID := uuid.New()
		actual := newTestSession(t, &readerID, session.PaymentUnpaid)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, session.StatusActive, actual.Status())
		assert.Equal(t, session.PaymentUnpaid, actual.PaymentState())
		assert.Equal(t, 3, actual.Spread().CardCount())
		assert.Equal(t, "past", actual.Spread().Label(1))
		assert.False(t, actual.CreatedAt().IsZero())
	})

	t.Run("rejects invalid payment state", func(t *testing.T) {
		spread, err := session.NewSpread("single", 1, nil, false)
		require.NoError(t, err)

		_, err = session.NewSession(uuid.New(), nil, "rider-waite", spread, session.Question{}, session.PaymentState("gratis"), time.Now())
		assert.ErrorIs(t, err, session.ErrInvalidPaymentState)
	})
}

func TestSpreadValidation(t *testing.T) {
	cases := []struct {
		name      string
		cardCount int
		labels    []string
		errIs     error
	}{
		{name: "minimum count", cardCount: 1},
		{name: "zero count", cardCount: 0, errIs: session.ErrInvalidCardCount},
		{name: "negative count", cardCount: -3, errIs: session.ErrInvalidCardCount},
		{name: "labels match count", cardCount: 2, labels: []string{"situation", "advice"}},
		{name: "label count mismatch", cardCount: 3, labels: []string{"only-one"}, errIs: session.ErrSpreadLabelMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.NewSpread("celtic", tc.cardCount, tc.labels, false)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestQuestionValidation(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		q, err := session.NewQuestion("  Will it rain?  ")
		require.NoError(t, err)
		assert.Equal(t, "Will it rain?", q.String())
	})

	t.Run("empty is allowed", func(t *testing.T) {
		q, err := session.NewQuestion("   ")
		require.NoError(t, err)
		assert.True(t, q.IsEmpty())
	})

	t.Run("rejects over-length question", func(t *testing.T) {
		long := make([]byte, session.MaxQuestionLength+1)
		for i := range long {
			long[i] = 'q'
		}
		_, err := session.NewQuestion(string(long))
		assert.ErrorIs(t, err, session.ErrQuestionTooLong)
	})
}

func TestSessionAuthorization(t *testing.T) {
	readerID := uuid.New()
	s := newTestSession(t, &readerID, session.PaymentPaid)
	stranger := uuid.New()

	t.Run("owner client can view", func(t *testing.T) {
		assert.True(t, s.CanView(s.ClientID(), user.RoleClient))
	})

	t.Run("assigned reader can view", func(t *testing.T) {
		assert.True(t, s.CanView(readerID, user.RoleReader))
	})

	t.Run("admin can always view", func(t *testing.T) {
		assert.True(t, s.CanView(stranger, user.RoleAdmin))
	})

	t.Run("stranger client cannot view", func(t *testing.T) {
		assert.False(t, s.CanView(stranger, user.RoleClient))
	})

	t.Run("unassigned reader cannot view", func(t *testing.T) {
		assert.False(t, s.CanView(stranger, user.RoleReader))
	})

	t.Run("client can never close", func(t *testing.T) {
		assert.False(t, s.CanClose(s.ClientID(), user.RoleClient))
	})

	t.Run("assigned reader can close", func(t *testing.T) {
		assert.True(t, s.CanClose(readerID, user.RoleReader))
	})

	t.Run("unassigned reader cannot close", func(t *testing.T) {
		assert.False(t, s.CanClose(stranger, user.RoleReader))
	})
}

func TestRolePermissions(t *testing.T) {
	assert.False(t, user.RoleClient.CanBurn())
	assert.True(t, user.RoleReader.CanBurn())
	assert.True(t, user.RoleAdmin.CanBurn())

	_, err := user.NewRole("owner")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
