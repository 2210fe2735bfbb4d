package api

import (
	"errors"
	"net/http"
	"strconv"

	"tarot-sessions/internal/domain/user"
	reqdto "tarot-sessions/internal/handler/dto/request"
	resdto "tarot-sessions/internal/handler/dto/response"
	"tarot-sessions/internal/handler/middleware"
	"tarot-sessions/internal/pkg/errs"
	"tarot-sessions/internal/usecase/commands"
	"tarot-sessions/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionCommands commands.SessionCommands
	sessionQueries  queries.SessionQueries
}

func NewSessionHandler(sessionCommands commands.SessionCommands, sessionQueries queries.SessionQueries) *SessionHandler {
	return &SessionHandler{
		sessionCommands: sessionCommands,
		sessionQueries:  sessionQueries,
	}
}

// @Summary Create session
// @Description Create a reading session with randomly assigned cards
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSessionRequest true "Session request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	params := commands.CreateSessionParams{
		ActorID:        actorID,
		ActorRole:      actorRole,
		ClientID:       req.ClientID,
		ReaderID:       req.ReaderID,
		DeckID:         req.DeckID,
		CardCount:      req.CardCount,
		SpreadName:     req.SpreadName,
		PositionLabels: req.PositionLabels,
		Sequential:     req.Sequential,
		Question:       req.Question,
		PaymentState:   req.PaymentState,
		LiveCall:       req.LiveCall,
	}

	view, err := h.sessionCommands.Create(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSessionView(view))
}

// @Summary Get session
// @Description Get a session filtered to the caller's role
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return
	}

	view, err := h.sessionQueries.GetByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary List sessions
// @Description List sessions visible to the caller
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SessionListResponse
// @Failure 401 {object} map[string]string
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.sessionQueries.ListForActor(c.Request.Context(), actorID, actorRole)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]*resdto.SessionListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromSessionListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Reveal card
// @Description Reveal the card at a position, requires paid or live_call payment state
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param position path int true "Slot position"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/slots/{position}/reveal [post]
func (h *SessionHandler) RevealCard(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, position, err := sessionSlotParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.sessionCommands.Reveal(c.Request.Context(), id, position, actorID, actorRole)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Burn card
// @Description Discard the card at a position without revealing it, reader or admin only
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param position path int true "Slot position"
// @Param request body reqdto.BurnCardRequest false "Burn request"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/slots/{position}/burn [post]
func (h *SessionHandler) BurnCard(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, position, err := sessionSlotParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req reqdto.BurnCardRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	view, err := h.sessionCommands.Burn(c.Request.Context(), id, position, actorID, actorRole, req.TrimmedReason())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Close session
// @Description Close an active session, assigned reader or admin only
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/close [post]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return
	}

	view, err := h.sessionCommands.Close(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Set payment state
// @Description Update a session's payment state, admin only
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.SetPaymentStateRequest true "Payment state"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/payment-state [post]
func (h *SessionHandler) SetPaymentState(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return
	}

	var req reqdto.SetPaymentStateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.sessionCommands.SetPaymentState(c.Request.Context(), id, req.PaymentState, actorID, actorRole)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

func (h *SessionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, errs.ErrDeckNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, errs.ErrPaymentRequired):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment required to reveal cards"})
	case errors.Is(err, errs.ErrSequenceViolation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Earlier positions must be resolved first"})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot or session state does not allow this transition"})
	case errors.Is(err, errs.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, errs.ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func actor(c *gin.Context) (uuid.UUID, user.Role, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return actorID, role, true
}

func sessionSlotParams(c *gin.Context) (uuid.UUID, int, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, 0, errors.New("invalid session ID format")
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 1 {
		return uuid.Nil, 0, errors.New("invalid slot position")
	}
	return id, position, nil
}
