package commands

import (
	"context"
	"log/slog"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/domain/session"
	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/infra"
	"tarot-sessions/internal/infra/db"
	"tarot-sessions/internal/pkg/clock"
	"tarot-sessions/internal/pkg/config"
	"tarot-sessions/internal/pkg/errs"
	"tarot-sessions/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreateSessionParams struct {
	ActorID        uuid.UUID
	ActorRole      user.Role
	ClientID       *uuid.UUID
	ReaderID       *uuid.UUID
	DeckID         string
	CardCount      int
	SpreadName     string
	PositionLabels []string
	Sequential     bool
	Question       string
	PaymentState   string
	LiveCall       bool
}

type SessionCommands interface {
	Create(ctx context.Context, params CreateSessionParams) (*queries.SessionView, error)
	Reveal(ctx context.Context, sessionID uuid.UUID, position int, actorID uuid.UUID, actorRole user.Role) (*queries.SessionView, error)
	Burn(ctx context.Context, sessionID uuid.UUID, position int, actorID uuid.UUID, actorRole user.Role, reason string) (*queries.SessionView, error)
	Close(ctx context.Context, sessionID uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*queries.SessionView, error)
	SetPaymentState(ctx context.Context, sessionID uuid.UUID, newState string, actorID uuid.UUID, actorRole user.Role) (*queries.SessionView, error)
	CloseInactive(ctx context.Context) (int64, error)
}

type sessionCommandsImpl struct {
	repo           SessionRepository
	readStore      queries.SessionReadStore
	catalog        DeckCatalog
	audit          AuditSink
	sessionQueries queries.SessionQueries
	db             *pgxpool.Pool
	clock          clock.Clock
	cfg            config.SessionConfig
}

func NewSessionCommands(
	repo SessionRepository,
	readStore queries.SessionReadStore,
	catalog DeckCatalog,
	audit AuditSink,
	sessionQueries queries.SessionQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
	cfg config.SessionConfig,
) SessionCommands {
	return &sessionCommandsImpl{
		repo:           repo,
		readStore:      readStore,
		catalog:        catalog,
		audit:          audit,
		sessionQueries: sessionQueries,
		db:             db,
		clock:          clock,
		cfg:            cfg,
	}
}

func (u *sessionCommandsImpl) Create(ctx context.Context, params CreateSessionParams) (*queries.SessionView, error) {
	clientID, readerID, err := resolveParticipants(params)
	if err != nil {
		return nil, err
	}

	paymentState, err := resolvePaymentState(params)
	if err != nil {
		return nil, err
	}

	d, err := u.catalog.GetDeck(ctx, params.DeckID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDeckNotFound)
	}
	if params.CardCount < 1 || params.CardCount > d.TotalCardCount() {
		return nil, errs.Mark(errs.New("card count out of range for deck"), errs.ErrInvalidRequest)
	}

	spread, err := session.NewSpread(params.SpreadName, params.CardCount, params.PositionLabels, params.Sequential)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}
	question, err := session.NewQuestion(params.Question)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}

	now := u.clock.Now()
	sess, err := session.NewSession(clientID, readerID, d.ID(), spread, question, paymentState, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}

	assignments, err := deck.Draw(d, params.CardCount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}

	slots := make([]*session.Slot, len(assignments))
	for i, a := range assignments {
		slot, slotErr := session.NewSlot(sess.ID(), a.Position, a.CardID)
		if slotErr != nil {
			return nil, errs.Mark(slotErr, errs.ErrInvalidRequest)
		}
		slots[i] = slot
	}

	if err := u.createWithRetry(ctx, sess, slots); err != nil {
		return nil, err
	}

	u.emit(ctx, AuditEvent{
		SessionID: sess.ID(),
		ActorID:   params.ActorID,
		ActorRole: params.ActorRole,
		Kind:      AuditSessionCreated,
		NewState:  sess.Status().String(),
		At:        now,
	})

	return u.sessionQueries.GetByID(ctx, sess.ID(), params.ActorID, params.ActorRole)
}

func (u *sessionCommandsImpl) Reveal(ctx context.Context, sessionID uuid.UUID, position int, actorID uuid.UUID, actorRole user.Role) (*queries.SessionView, error) {
	record, err := u.findRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !canViewSession(record, actorID, actorRole) {
		return nil, errs.ErrForbidden
	}
	if record.Status != session.StatusActive.String() {
		return nil, errs.Mark(errs.New("session is closed"), errs.ErrInvalidTransition)
	}
	if !session.PaymentState(record.PaymentState).CanReveal() {
		return nil, errs.ErrPaymentRequired
	}

	slot := record.Slot(position)
	if slot == nil {
		return nil, errs.Mark(errs.New("no slot at position"), errs.ErrInvalidRequest)
	}
	if slot.State != session.SlotHidden.String() {
		return nil, errs.ErrInvalidTransition
	}
	if record.Sequential {
		for _, other := range record.Slots {
			if other.Position < position && other.State == session.SlotHidden.String() {
				return nil, errs.ErrSequenceViolation
			}
		}
	}

	now := u.clock.Now()
	meta := SlotStateMeta{RevealedAt: &now}
	if err := u.transition(ctx, sessionID, position, session.SlotRevealed, meta); err != nil {
		return nil, err
	}

	pos := position
	u.emit(ctx, AuditEvent{
		SessionID: sessionID,
		Position:  &pos,
		ActorID:   actorID,
		ActorRole: actorRole,
		Kind:      AuditCardRevealed,
		OldState:  session.SlotHidden.String(),
		NewState:  session.SlotRevealed.String(),
		At:        now,
	})

	return u.sessionQueries.GetByID(ctx, sessionID, actorID, actorRole)
}

func (u *sessionCommandsImpl) Burn(ctx context.Context, sessionID uuid.UUID, position int, actorID uuid.UUID, actorRole user.Role, reason string) (*queries.SessionView, error) {
	if !actorRole.CanBurn() {
		return nil, errs.ErrForbidden
	}

	record, err := u.findRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !canViewSession(record, actorID, actorRole) {
		return nil, errs.ErrForbidden
	}
	if record.Status != session.StatusActive.String() {
		return nil, errs.Mark(errs.New("session is closed"), errs.ErrInvalidTransition)
	}

	slot := record.Slot(position)
	if slot == nil {
		return nil, errs.Mark(errs.New("no slot at position"), errs.ErrInvalidRequest)
	}
	if slot.State != session.SlotHidden.String() {
		return nil, errs.ErrInvalidTransition
	}

	// The domain entity validates and normalizes the reason before any write.
	now := u.clock.Now()
	check := session.ReconstructSlot(sessionID, position, slot.CardID, session.SlotHidden, nil, nil, nil, nil)
	if err := check.Burn(now, actorID, reason); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}

	meta := SlotStateMeta{
		BurnedAt:   check.BurnedAt(),
		BurnedBy:   check.BurnedBy(),
		BurnReason: check.BurnReason(),
	}
	if err := u.transition(ctx, sessionID, position, session.SlotBurned, meta); err != nil {
		return nil, err
	}

	pos := position
	u.emit(ctx, AuditEvent{
		SessionID: sessionID,
		Position:  &pos,
		ActorID:   actorID,
		ActorRole: actorRole,
		Kind:      AuditCardBurned,
		OldState:  session.SlotHidden.String(),
		NewState:  session.SlotBurned.String(),
		Reason:    check.BurnReason(),
		At:        now,
	})

	return u.sessionQueries.GetByID(ctx, sessionID, actorID, actorRole)
}

func (u *sessionCommandsImpl) Close(ctx context.Context, sessionID uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*queries.SessionView, error) {
	record, err := u.findRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !canCloseSession(record, actorID, actorRole) {
		return nil, errs.ErrForbidden
	}
	if record.Status != session.StatusActive.String() {
		return nil, errs.Mark(errs.New("session is already closed"), errs.ErrInvalidTransition)
	}

	now := u.clock.Now()
	if err := u.runTx(ctx, func(tx db.DBTX) error {
		return u.repo.Close(ctx, tx, sessionID, now)
	}); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrInvalidTransition
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.emit(ctx, AuditEvent{
		SessionID: sessionID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Kind:      AuditSessionClosed,
		OldState:  session.StatusActive.String(),
		NewState:  session.StatusClosed.String(),
		At:        now,
	})

	return u.sessionQueries.GetByID(ctx, sessionID, actorID, actorRole)
}

func (u *sessionCommandsImpl) SetPaymentState(ctx context.Context, sessionID uuid.UUID, newState string, actorID uuid.UUID, actorRole user.Role) (*queries.SessionView, error) {
	// Only the booking/payment collaborator (authenticated as admin) may
	// change payment state; the engine never computes it.
	if !actorRole.IsAdmin() {
		return nil, errs.ErrForbidden
	}

	state := session.PaymentState(newState)
	if !state.IsValid() {
		return nil, errs.Mark(errs.New("unknown payment state"), errs.ErrInvalidRequest)
	}

	record, err := u.findRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	if err := u.runTx(ctx, func(tx db.DBTX) error {
		return u.repo.UpdatePaymentState(ctx, tx, sessionID, state, now)
	}); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSessionNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.emit(ctx, AuditEvent{
		SessionID: sessionID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Kind:      AuditPaymentStateChanged,
		OldState:  record.PaymentState,
		NewState:  state.String(),
		At:        now,
	})

	return u.sessionQueries.GetByID(ctx, sessionID, actorID, actorRole)
}

// CloseInactive ends sessions idle longer than the configured timeout. Run
// by the background sweeper, not exposed over HTTP.
func (u *sessionCommandsImpl) CloseInactive(ctx context.Context) (int64, error) {
	cutoff := u.clock.Now().Add(-u.cfg.InactivityTimeout)
	closed, err := u.repo.CloseInactiveBefore(ctx, u.db, cutoff)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return closed, nil
}

func (u *sessionCommandsImpl) findRecord(ctx context.Context, sessionID uuid.UUID) (*queries.SessionRecord, error) {
	record, err := u.readStore.FindByID(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSessionNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return record, nil
}

func (u *sessionCommandsImpl) createWithRetry(ctx context.Context, sess *session.Session, slots []*session.Slot) error {
	var err error
	// One internal retry on transient storage failure; the whole creation is
	// re-attempted atomically.
	for attempt := 0; attempt < 2; attempt++ {
		err = u.runTx(ctx, func(tx db.DBTX) error {
			return u.repo.Create(ctx, tx, sess, slots)
		})
		if err == nil {
			return nil
		}
		if !infra.IsKind(err, infra.KindDBFailure) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		slog.Warn("session creation failed, retrying", "attempt", attempt+1, "error", err.Error())
	}
	return errs.Mark(err, errs.ErrServiceUnavailable)
}

func (u *sessionCommandsImpl) transition(ctx context.Context, sessionID uuid.UUID, position int, to session.SlotState, meta SlotStateMeta) error {
	err := u.runTx(ctx, func(tx db.DBTX) error {
		return u.repo.UpdateSlotState(ctx, tx, sessionID, position, session.SlotHidden, to, meta)
	})
	if err != nil {
		// Zero rows matched: a concurrent call won the race or the slot was
		// already terminal. Exactly one caller ever succeeds.
		if infra.IsKind(err, infra.KindConflict) {
			return errs.ErrInvalidTransition
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *sessionCommandsImpl) runTx(ctx context.Context, fn func(tx db.DBTX) error) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr.Error() != "tx is closed" {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}

func (u *sessionCommandsImpl) emit(ctx context.Context, event AuditEvent) {
	if err := u.audit.Emit(ctx, event); err != nil {
		// Best-effort by decision: the transition already committed.
		slog.Warn("audit event delivery failed",
			"session_id", event.SessionID,
			"kind", string(event.Kind),
			"error", err.Error())
	}
}

func resolveParticipants(params CreateSessionParams) (uuid.UUID, *uuid.UUID, error) {
	switch params.ActorRole {
	case user.RoleClient:
		// Clients always book for themselves.
		if params.ClientID != nil && *params.ClientID != params.ActorID {
			return uuid.Nil, nil, errs.ErrForbidden
		}
		return params.ActorID, params.ReaderID, nil

	case user.RoleReader:
		if params.ClientID == nil {
			return uuid.Nil, nil, errs.Mark(errs.New("client id required"), errs.ErrInvalidRequest)
		}
		if params.ReaderID != nil && *params.ReaderID != params.ActorID {
			return uuid.Nil, nil, errs.ErrForbidden
		}
		readerID := params.ActorID
		return *params.ClientID, &readerID, nil

	case user.RoleAdmin:
		if params.ClientID == nil {
			return uuid.Nil, nil, errs.Mark(errs.New("client id required"), errs.ErrInvalidRequest)
		}
		return *params.ClientID, params.ReaderID, nil

	default:
		return uuid.Nil, nil, errs.ErrForbidden
	}
}

func resolvePaymentState(params CreateSessionParams) (session.PaymentState, error) {
	// Only the booking/payment collaborator (admin) may open a session in a
	// revealable state. Anyone else starts unpaid and waits for the
	// collaborator's payment-state update.
	if !params.ActorRole.IsAdmin() {
		if params.LiveCall || (params.PaymentState != "" && params.PaymentState != session.PaymentUnpaid.String()) {
			return "", errs.ErrForbidden
		}
		return session.PaymentUnpaid, nil
	}

	if params.LiveCall {
		return session.PaymentLiveCall, nil
	}
	if params.PaymentState == "" {
		return session.PaymentUnpaid, nil
	}
	state := session.PaymentState(params.PaymentState)
	if !state.IsValid() {
		return "", errs.Mark(errs.New("unknown payment state"), errs.ErrInvalidRequest)
	}
	return state, nil
}

func canViewSession(record *queries.SessionRecord, actorID uuid.UUID, actorRole user.Role) bool {
	switch actorRole {
	case user.RoleAdmin:
		return true
	case user.RoleClient:
		return record.ClientID == actorID
	case user.RoleReader:
		return record.ReaderID != nil && *record.ReaderID == actorID
	default:
		return false
	}
}

func canCloseSession(record *queries.SessionRecord, actorID uuid.UUID, actorRole user.Role) bool {
	if actorRole.IsAdmin() {
		return true
	}
	return actorRole == user.RoleReader && record.ReaderID != nil && *record.ReaderID == actorID
}
