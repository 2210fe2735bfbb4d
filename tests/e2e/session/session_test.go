//go:build e2e

package session_test

import (
	"net/http"
	"testing"

	"tarot-sessions/internal/domain/user"
	resdto "tarot-sessions/internal/handler/dto/response"
	"tarot-sessions/internal/pkg/config"
	"tarot-sessions/tests/common/authtest"
	"tarot-sessions/tests/common/dbtest"
	"tarot-sessions/tests/common/httptest"
	"tarot-sessions/tests/e2e"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const sessionsURL = "/api/sessions"

type SessionE2ETestSuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	router *gin.Engine
	cfg    config.Config
	jwt    *authtest.JWTHelper

	clientID uuid.UUID
	readerID uuid.UUID
	adminID  uuid.UUID
}

func (s *SessionE2ETestSuite) SetupSuite() {
	s.pool, s.router, s.cfg = e2e.SetupE2EEnvironment(s.T())
	s.jwt = authtest.NewJWTHelper(s.cfg.JWT)
}

func (s *SessionE2ETestSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.pool))
	s.clientID = uuid.New()
	s.readerID = uuid.New()
	s.adminID = uuid.New()
}

func TestSessionE2ETestSuite(t *testing.T) {
	suite.Run(t, new(SessionE2ETestSuite))
}

func (s *SessionE2ETestSuite) clientToken() string {
	return s.jwt.GenerateToken(s.T(), s.clientID, user.RoleClient)
}

func (s *SessionE2ETestSuite) readerToken() string {
	return s.jwt.GenerateToken(s.T(), s.readerID, user.RoleReader)
}

func (s *SessionE2ETestSuite) adminToken() string {
	return s.jwt.GenerateToken(s.T(), s.adminID, user.RoleAdmin)
}

func (s *SessionE2ETestSuite) createThreeCardSession() resdto.SessionResponse {
	body := map[string]any{
		"reader_id":   s.readerID.String(),
		"deck_id":     "rider-waite",
		"card_count":  3,
		"spread_name": "three-card",
		"question":    "What should I focus on this month?",
	}

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL, body, s.clientToken())

	var resp resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *SessionE2ETestSuite) setPaymentState(sessionID, state string) {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
		sessionsURL+"/"+sessionID+"/payment-state",
		map[string]any{"payment_state": state}, s.adminToken())
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
}

func (s *SessionE2ETestSuite) TestSessionLifecycle() {
	created := s.createThreeCardSession()

	s.Equal("unpaid", created.PaymentState)
	s.Equal("active", created.Status)
	s.Len(created.Slots, 3)

	// Creation response goes to the client, so assigned cards are visible
	// and all slots start hidden.
	seen := map[string]bool{}
	for _, slot := range created.Slots {
		s.Equal("hidden", slot.State)
		s.Require().NotNil(slot.Card)
		s.False(seen[slot.Card.ID], "cards must be distinct")
		seen[slot.Card.ID] = true
	}

	id := created.ID.String()

	// Unpaid reveal is rejected with 402.
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/reveal", nil, s.clientToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusPaymentRequired, "Payment required")

	s.setPaymentState(id, "paid")

	// Paid reveal succeeds.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/reveal", nil, s.clientToken())
	var afterReveal resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &afterReveal)
	s.Equal("revealed", afterReveal.Slots[0].State)
	s.NotNil(afterReveal.Slots[0].RevealedAt)

	// Burning a revealed slot is rejected.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/burn", nil, s.readerToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "does not allow this transition")

	// Reader burns a hidden slot.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/2/burn",
		map[string]any{"reason": "client requested a fresh draw"}, s.readerToken())
	var afterBurn resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &afterBurn)
	s.Equal("burned", afterBurn.Slots[1].State)
	s.NotNil(afterBurn.Slots[1].BurnReason)

	// Reader view never contains card identity, whatever the slot state.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, sessionsURL+"/"+id, nil, s.readerToken())
	var readerView resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &readerView)
	for _, slot := range readerView.Slots {
		s.Nil(slot.Card, "reader must not see card identity at position %d", slot.Position)
	}

	// Client still sees all cards.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, sessionsURL+"/"+id, nil, s.clientToken())
	var clientView resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &clientView)
	for _, slot := range clientView.Slots {
		s.NotNil(slot.Card)
	}
}

func (s *SessionE2ETestSuite) TestRevealIsIdempotentRejection() {
	created := s.createThreeCardSession()
	id := created.ID.String()
	s.setPaymentState(id, "live_call")

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/reveal", nil, s.clientToken())
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	// Second reveal of the same slot fails without changing anything.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/reveal", nil, s.clientToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "does not allow this transition")
}

func (s *SessionE2ETestSuite) TestStrangerCannotSeeSession() {
	created := s.createThreeCardSession()
	id := created.ID.String()

	strangerToken := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleClient)
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, sessionsURL+"/"+id, nil, strangerToken)
	httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Access denied")
}

func (s *SessionE2ETestSuite) TestClientCannotBurn() {
	created := s.createThreeCardSession()
	id := created.ID.String()

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/burn", nil, s.clientToken())
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *SessionE2ETestSuite) TestCloseSession() {
	created := s.createThreeCardSession()
	id := created.ID.String()

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/close", nil, s.readerToken())
	var closed resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &closed)
	s.Equal("closed", closed.Status)

	// Closed session rejects further reveals.
	s.setPaymentState(id, "paid")
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/reveal", nil, s.clientToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "does not allow this transition")

	// Closing twice is rejected.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/close", nil, s.readerToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "does not allow this transition")
}

func (s *SessionE2ETestSuite) TestSequentialSpreadRevealOrder() {
	body := map[string]any{
		"reader_id":   s.readerID.String(),
		"deck_id":     "rider-waite",
		"card_count":  3,
		"spread_name": "three-card",
		"sequential":  true,
	}
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL, body, s.clientToken())
	var created resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)
	id := created.ID.String()
	s.setPaymentState(id, "paid")

	// Position 2 before position 1 is rejected.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/2/reveal", nil, s.clientToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Earlier positions must be resolved first")

	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/1/reveal", nil, s.clientToken())
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	// A burned earlier position unblocks later ones just like a reveal.
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/2/burn", nil, s.readerToken())
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id+"/slots/3/reveal", nil, s.clientToken())
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
}

func (s *SessionE2ETestSuite) TestClientCannotSelfDeclarePaidSession() {
	body := map[string]any{
		"deck_id":       "rider-waite",
		"card_count":    3,
		"spread_name":   "three-card",
		"payment_state": "paid",
	}
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL, body, s.clientToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Access denied")

	body = map[string]any{
		"deck_id":     "rider-waite",
		"card_count":  3,
		"spread_name": "three-card",
		"live_call":   true,
	}
	w = httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL, body, s.clientToken())
	httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Access denied")
}

func (s *SessionE2ETestSuite) TestAuditTrailRecorded() {
	created := s.createThreeCardSession()
	id := created.ID

	s.setPaymentState(id.String(), "paid")
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, sessionsURL+"/"+id.String()+"/slots/1/reveal", nil, s.clientToken())
	require.Equal(s.T(), http.StatusOK, w.Code)

	var kinds []string
	rows, err := s.pool.Query(s.T().Context(), "SELECT kind FROM audit_events WHERE session_id = $1 ORDER BY occurred_at", id)
	require.NoError(s.T(), err)
	defer rows.Close()
	for rows.Next() {
		var kind string
		require.NoError(s.T(), rows.Scan(&kind))
		kinds = append(kinds, kind)
	}
	require.NoError(s.T(), rows.Err())

	s.Equal([]string{"session_created", "payment_state_changed", "card_revealed"}, kinds)
}
