package gamify

import (
	"context"
	"errors"

	"github.com/jobquest-lab/backend/config"
	"github.com/jobquest-lab/backend/internal/entity"
	"github.com/jobquest-lab/backend/internal/repository"
	"github.com/jobquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// BadgeScanner decides whether an action unlocks a badge. Scanners are
// registered per action type; the engine runs every scanner bound to the
// incoming action.
type BadgeScanner interface {
	// ActionType returns the action this scanner reacts to.
	ActionType() string

	// BadgeType returns the catalog key of the badge this scanner unlocks.
	BadgeType() string

	// Scan reports whether the badge should be given to the user now.
	Scan(ctx context.Context, userID string, payload entity.Map) (bool, error)
}

// BadgeEngine evaluates unlock predicates and grants badges exactly once.
type BadgeEngine struct {
	// scanners is only written at initialization, readonly afterwards.
	scanners map[string][]BadgeScanner

	badgeRepo     repository.BadgeRepository
	userBadgeRepo repository.UserBadgeRepository
	ledger        *Ledger
}

func NewBadgeEngine(
	cfg config.GamificationConfigs,
	badgeRepo repository.BadgeRepository,
	userBadgeRepo repository.UserBadgeRepository,
	counterRepo repository.UserCounterRepository,
	ledger *Ledger,
) *BadgeEngine {
	engine := &BadgeEngine{
		scanners:      make(map[string][]BadgeScanner),
		badgeRepo:     badgeRepo,
		userBadgeRepo: userBadgeRepo,
		ledger:        ledger,
	}

	for _, rule := range cfg.BadgeRules {
		engine.Register(newRuleScanner(rule, counterRepo))
	}

	return engine
}

// Register adds a scanner. It is not safe to call after the engine started
// serving actions.
func (e *BadgeEngine) Register(scanner BadgeScanner) {
	e.scanners[scanner.ActionType()] = append(e.scanners[scanner.ActionType()], scanner)
}

// Check returns the badges the action unlocks for the user, filtering out
// badges already granted. Badge types missing from the catalog are skipped
// silently.
func (e *BadgeEngine) Check(
	ctx context.Context, userID, actionType string, payload entity.Map,
) ([]entity.Badge, error) {
	var unlocked []entity.Badge
	for _, scanner := range e.scanners[actionType] {
		ok, err := scanner.Scan(ctx, userID, payload)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		badge, err := e.badgeRepo.GetByType(ctx, scanner.BadgeType())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Warnf("No badge %s in catalog", scanner.BadgeType())
				continue
			}

			return nil, err
		}

		_, err = e.userBadgeRepo.Get(ctx, userID, badge.ID)
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		unlocked = append(unlocked, *badge)
	}

	return unlocked, nil
}

// Award grants the badge unless the user already holds it, and reports
// whether a grant happened. Only a first grant awards the badge's point
// value; repeat calls are side-effect free.
func (e *BadgeEngine) Award(ctx context.Context, userID string, badge entity.Badge) (bool, error) {
	created, err := e.userBadgeRepo.CreateIfNotExist(ctx, &entity.UserBadge{
		UserID:  userID,
		BadgeID: badge.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user badge: %v", err)
		return false, err
	}

	if !created {
		return false, nil
	}

	if badge.Points > 0 {
		if err := e.ledger.Award(ctx, userID, badge.Points); err != nil {
			return false, err
		}
	}

	return true, nil
}

// ruleScanner is a BadgeScanner built from a configured BadgeRule. The
// counter form fires when the named user counter lands exactly on a value,
// the metric form when a numeric payload field reaches a floor.
type ruleScanner struct {
	rule        config.BadgeRule
	counterRepo repository.UserCounterRepository
}

func newRuleScanner(rule config.BadgeRule, counterRepo repository.UserCounterRepository) *ruleScanner {
	return &ruleScanner{rule: rule, counterRepo: counterRepo}
}

func (s *ruleScanner) ActionType() string {
	return s.rule.Action
}

func (s *ruleScanner) BadgeType() string {
	return s.rule.Badge
}

func (s *ruleScanner) Scan(ctx context.Context, userID string, payload entity.Map) (bool, error) {
	if s.rule.Counter != "" {
		value, err := s.counterRepo.Get(ctx, userID, s.rule.Counter)
		if err != nil {
			return false, err
		}

		return value == int64(s.rule.Equals), nil
	}

	if s.rule.Metric != "" {
		return payloadNumber(payload, s.rule.Metric) >= float64(s.rule.AtLeast), nil
	}

	return false, nil
}

// payloadNumber reads a numeric payload field, tolerating the types JSON and
// map literals produce. Missing or non-numeric fields count as zero.
func payloadNumber(payload entity.Map, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
