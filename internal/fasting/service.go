package fasting

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastward/fastward/internal/analytics"
	"github.com/fastward/fastward/internal/constants"
	"github.com/fastward/fastward/internal/logger"
	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/planner"
	"github.com/fastward/fastward/internal/storage"
	"github.com/fastward/fastward/internal/timeutil"
)

// Service is the fasting session lifecycle. All operations are scoped by
// userID and are short read-modify-write sequences against the store; the
// one-active-session invariant is enforced by the store's unique index, so
// concurrent starts cannot both succeed.
//
// Completion detection is lazy: there is no background sweep. Read paths
// (GetActiveSession, StartFast) finalize an active session whose target
// end has elapsed, recording the read instant as the actual end.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

// NewService creates a lifecycle service using the wall clock.
func NewService(store storage.Provider) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceAt creates a lifecycle service with an injected clock. Tests
// use this to pin "now".
func NewServiceAt(store storage.Provider, clock func() time.Time) *Service {
	return &Service{store: store, now: clock}
}

// StartFast begins a new fast for the user against the given protocol.
// Returns ErrSessionConflict if an active session already exists.
func (s *Service) StartFast(userID string, protocol models.Protocol) (models.FastingSession, error) {
	if protocol.Hours <= 0 {
		return models.FastingSession{}, fmt.Errorf("%w: protocol hours must be positive", ErrInvalidInput)
	}

	now := s.now()
	startedAt := timeutil.ToMillis(now)

	// An elapsed-but-unread previous fast should not block a new start.
	if _, err := s.resolveActive(userID, now); err != nil {
		return models.FastingSession{}, err
	}

	sess := models.FastingSession{
		ID:           uuid.New().String(),
		UserID:       userID,
		Protocol:     protocol.Name,
		Status:       models.SessionActive,
		StartedAt:    startedAt,
		TargetEndAt:  startedAt + timeutil.HoursToMillis(float64(protocol.Hours)),
		FastingHours: float64(protocol.Hours),
		WaterCount:   0,
	}

	if err := s.store.InsertSession(sess); err != nil {
		if errors.Is(err, storage.ErrDuplicateActiveSession) {
			return models.FastingSession{}, ErrSessionConflict
		}
		return models.FastingSession{}, err
	}

	logger.Info("Started fast", "user", userID, "protocol", protocol.Name, "hours", protocol.Hours)
	return sess, nil
}

// GetActiveSession returns the user's active session, or nil when there is
// none. An active session whose target end has elapsed is finalized to
// completed during the read and nil is returned; the completion becomes
// visible to history and analytics immediately.
func (s *Service) GetActiveSession(userID string) (*models.FastingSession, error) {
	return s.resolveActive(userID, s.now())
}

// resolveActive is the finalize-on-read path shared by StartFast and
// GetActiveSession.
func (s *Service) resolveActive(userID string, now time.Time) (*models.FastingSession, error) {
	sess, err := s.store.FindActiveSession(userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	if sess.IsElapsed(now) {
		endedAt := timeutil.ToMillis(now)
		sess.Status = models.SessionCompleted
		sess.ActualEndAt = &endedAt
		if err := s.store.UpdateSession(*sess); err != nil {
			return nil, err
		}
		logger.Info("Finalized elapsed fast", "user", userID, "session", sess.ID)
		return nil, nil
	}

	return sess, nil
}

// ExtendFast lengthens an active fast. additionalHours must be in
// (0, 24]; both fastingHours and targetEndAt only ever increase.
func (s *Service) ExtendFast(userID, sessionID string, additionalHours float64) (models.FastingSession, error) {
	if additionalHours <= 0 || additionalHours > constants.ExtendMaxHours {
		return models.FastingSession{}, fmt.Errorf("%w: additional hours must be in (0, %v]", ErrInvalidInput, constants.ExtendMaxHours)
	}

	sess, err := s.findOwned(userID, sessionID)
	if err != nil {
		return models.FastingSession{}, err
	}
	if !sess.IsActive() {
		return models.FastingSession{}, ErrSessionNotActive
	}

	sess.FastingHours += additionalHours
	sess.TargetEndAt += timeutil.HoursToMillis(additionalHours)

	if err := s.update(sess); err != nil {
		return models.FastingSession{}, err
	}

	logger.Info("Extended fast", "user", userID, "session", sess.ID, "added_hours", additionalHours)
	return sess, nil
}

// CancelFast aborts an active fast. The session is kept in history with
// status cancelled; it does not count toward streaks.
func (s *Service) CancelFast(userID, sessionID string) (models.FastingSession, error) {
	sess, err := s.findOwned(userID, sessionID)
	if err != nil {
		return models.FastingSession{}, err
	}
	if !sess.IsActive() {
		return models.FastingSession{}, ErrSessionNotActive
	}

	endedAt := timeutil.ToMillis(s.now())
	sess.Status = models.SessionCancelled
	sess.ActualEndAt = &endedAt

	if err := s.update(sess); err != nil {
		return models.FastingSession{}, err
	}

	logger.Info("Cancelled fast", "user", userID, "session", sess.ID)
	return sess, nil
}

// CompleteFast explicitly finishes an active fast. A session is eligible
// once its target end has elapsed; completing early is rejected.
func (s *Service) CompleteFast(userID, sessionID string) (models.FastingSession, error) {
	sess, err := s.findOwned(userID, sessionID)
	if err != nil {
		return models.FastingSession{}, err
	}
	if !sess.IsActive() {
		return models.FastingSession{}, ErrSessionNotActive
	}

	now := s.now()
	if !sess.IsElapsed(now) {
		return models.FastingSession{}, fmt.Errorf("%w: fast has not reached its target end", ErrInvalidInput)
	}

	endedAt := timeutil.ToMillis(now)
	sess.Status = models.SessionCompleted
	sess.ActualEndAt = &endedAt

	if err := s.update(sess); err != nil {
		return models.FastingSession{}, err
	}

	logger.Info("Completed fast", "user", userID, "session", sess.ID)
	return sess, nil
}

// AddWater logs one water intake event on an active fast.
func (s *Service) AddWater(userID, sessionID string) (models.FastingSession, error) {
	sess, err := s.findOwned(userID, sessionID)
	if err != nil {
		return models.FastingSession{}, err
	}
	if !sess.IsActive() {
		return models.FastingSession{}, ErrSessionNotActive
	}

	sess.WaterCount++
	if err := s.update(sess); err != nil {
		return models.FastingSession{}, err
	}
	return sess, nil
}

// RemoveWater undoes one water intake event. The count never goes below
// zero; removing at zero is a silent no-op so repeated calls are
// idempotent.
func (s *Service) RemoveWater(userID, sessionID string) (models.FastingSession, error) {
	sess, err := s.findOwned(userID, sessionID)
	if err != nil {
		return models.FastingSession{}, err
	}
	if !sess.IsActive() {
		return models.FastingSession{}, ErrSessionNotActive
	}

	if sess.WaterCount == 0 {
		return sess, nil
	}

	sess.WaterCount--
	if err := s.update(sess); err != nil {
		return models.FastingSession{}, err
	}
	return sess, nil
}

// GetSessionHistory returns finished sessions most-recent-first. limit is
// clamped to [1, 200] (default 50 when zero or negative beyond clamping);
// offset is clamped to >= 0.
func (s *Service) GetSessionHistory(userID string, limit, offset int) ([]models.FastingSession, error) {
	if limit == 0 {
		limit = constants.HistoryDefaultLimit
	}
	if limit < constants.HistoryMinLimit {
		limit = constants.HistoryMinLimit
	}
	if limit > constants.HistoryMaxLimit {
		limit = constants.HistoryMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.store.ListFinishedSessions(userID, limit, offset)
}

// Streaks computes the streak and completion summary from the user's most
// recent completed sessions.
func (s *Service) Streaks(userID string) (models.StreakResult, error) {
	finished, err := s.store.ListFinishedSessions(userID, constants.HistoryMaxLimit, 0)
	if err != nil {
		return models.StreakResult{}, err
	}

	var completed []models.FastingSession
	for _, sess := range finished {
		if sess.Status == models.SessionCompleted {
			completed = append(completed, sess)
		}
	}

	return analytics.CalculateStreaks(completed, s.now()), nil
}

// Plan generates the forward-looking notification plan from the current
// session state, the user's profile and the last completion time. The
// plan is ephemeral; callers regenerate it whenever they need it.
func (s *Service) Plan(userID string) (models.NotificationPlan, error) {
	return s.PlanAt(userID, s.now())
}

// PlanAt generates the plan as of an explicit instant. The notify
// delivery path backdates the instant by the grace period so entries that
// just fired are still visible.
func (s *Service) PlanAt(userID string, now time.Time) (models.NotificationPlan, error) {
	active, err := s.resolveActive(userID, now)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		profile = models.DefaultProfile(userID)
	}

	var lastCompletedAt *int64
	last, err := s.store.FindLastCompletedSession(userID)
	if err != nil {
		return nil, err
	}
	if last != nil && last.ActualEndAt != nil {
		lastCompletedAt = last.ActualEndAt
	}

	return planner.GeneratePlan(active, profile, now, lastCompletedAt), nil
}

// Profile returns the stored profile, falling back to defaults when none
// has been saved yet.
func (s *Service) Profile(userID string) (models.Profile, error) {
	profile, err := s.store.GetProfile(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.DefaultProfile(userID), nil
		}
		return models.Profile{}, err
	}
	return profile, nil
}

func (s *Service) findOwned(userID, sessionID string) (models.FastingSession, error) {
	sess, err := s.store.FindSessionByID(userID, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.FastingSession{}, ErrSessionNotFound
		}
		return models.FastingSession{}, err
	}
	return sess, nil
}

func (s *Service) update(sess models.FastingSession) error {
	if err := s.store.UpdateSession(sess); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}
