// Package planner ties the calorie estimator to the meal plan oracle and keeps
// the per-user session state needed for "try again" and "new profile".
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitmeal/internal/calorie"
	"fitmeal/internal/domain"
	"fitmeal/internal/infra"
	"fitmeal/internal/providers/mealplan"

	"github.com/google/uuid"
)

// FailureMessage is what users are shown when the oracle fails.
const FailureMessage = "Failed to generate meal plan. Please try again."

type Options struct {
	Store     *Store
	Generator mealplan.Generator
	Logger    *infra.Logger
}

type Service struct {
	store     *Store
	generator mealplan.Generator
	logger    *infra.Logger
	now       func() time.Time
	newID     func() string
}

func NewService(opts Options) (*Service, error) {
	if opts.Generator == nil {
		return nil, errors.New("planner: generator is required")
	}
	store := opts.Store
	if store == nil {
		store = NewStore(time.Hour, 0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Service{
		store:     store,
		generator: opts.Generator,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// Estimate validates the profile and returns its calorie targets.
func (s *Service) Estimate(p domain.Profile) (calorie.Estimate, error) {
	return calorie.Compute(p)
}

// Start creates a session for p and requests its first plan. An invalid
// profile returns (nil, err), and so does a store whose sessions are all
// generating (domain.ErrCapacity). An oracle failure returns the created session
// together with an error wrapping domain.ErrProviderFailure.
func (s *Service) Start(ctx context.Context, p domain.Profile, locale, requestID string) (*Session, error) {
	est, err := calorie.Compute(p)
	if err != nil {
		return nil, err
	}
	if est.TargetCalories <= 0 {
		return nil, fmt.Errorf("%w: target of %d kcal is not plannable", domain.ErrInvalidProfile, est.TargetCalories)
	}
	now := s.now()
	sess := Session{
		ID:        s.newID(),
		Profile:   p,
		Estimate:  est,
		Locale:    locale,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Claim(sess); err != nil {
		s.logger.Warn().Err(err).Str("request_id", requestID).Msg("session store full")
		return nil, err
	}
	s.logger.Info().
		Str("session_id", sess.ID).
		Str("request_id", requestID).
		Str("goal", string(p.Goal)).
		Int("target_calories", est.TargetCalories).
		Msg("session created")
	return s.generate(ctx, sess, requestID)
}

// Regenerate replaces the session's plan with a fresh one. On failure the
// previous plan is kept and the error is recorded on the session.
func (s *Service) Regenerate(ctx context.Context, id, requestID string) (*Session, error) {
	sess, err := s.store.Acquire(id)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, sess, requestID)
}

func (s *Service) Get(id string) (*Session, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Reset forgets the session.
func (s *Service) Reset(id string) error {
	if !s.store.Delete(id) {
		return domain.ErrNotFound
	}
	s.logger.Info().Str("session_id", id).Msg("session reset")
	return nil
}

// generate runs one oracle call for a session already claimed or acquired in
// the store and releases it afterwards.
func (s *Service) generate(ctx context.Context, sess Session, requestID string) (*Session, error) {
	defer s.store.Release(sess.ID)
	plan, genErr := s.generator.Generate(ctx, mealplan.GenerateRequest{
		Goal:                sess.Profile.Goal,
		TargetCalories:      sess.Estimate.TargetCalories,
		DietaryRestrictions: sess.Profile.DietaryRestrictions,
		Locale:              sess.Locale,
		RequestID:           requestID,
	})
	if genErr == nil && plan == nil {
		genErr = domain.ErrEmptyResponse
	}
	if genErr != nil && !errors.Is(genErr, domain.ErrProviderFailure) {
		genErr = errors.Join(domain.ErrProviderFailure, genErr)
	}

	var warnings []domain.Warning
	if genErr == nil {
		warnings = plan.Check(sess.Estimate.TargetCalories)
	}
	updated, err := s.store.Update(sess.ID, func(stored *Session) {
		stored.Generations++
		if genErr != nil {
			stored.LastError = FailureMessage
			return
		}
		stored.Plan = plan
		stored.Warnings = warnings
		stored.LastError = ""
	})
	if err != nil {
		return nil, err
	}

	log := s.logger.With().Str("session_id", sess.ID).Str("request_id", requestID).Int("generation", updated.Generations).Logger()
	if genErr != nil {
		log.Warn().Err(genErr).Msg("meal plan generation failed")
		return &updated, genErr
	}
	for _, w := range warnings {
		log.Debug().Str("code", w.Code).Msg(w.Message)
	}
	log.Info().Int("meals", len(plan.Meals)).Int("warnings", len(warnings)).Msg("meal plan generated")
	return &updated, nil
}
