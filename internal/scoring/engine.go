package scoring

import (
	"errors"
	"fmt"

	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

// Policy names. A process scores with exactly one of them.
const (
	PolicySimple = config.VariantSimple
	PolicyTiered = config.VariantTiered
)

// ErrUnknownVariant is returned for submissions whose tag (or provider shape)
// the active policy has no rules for.
var ErrUnknownVariant = errors.New("scoring: unknown submission variant")

// ScoringRule is one additive contribution to the interest score. Points must
// return a value in [0, MaxPoints].
type ScoringRule[T any] struct {
	Key         string
	Description string
	MaxPoints   int
	Points      func(T) int
}

// ScoreResult represents the result of scoring a submission
type ScoreResult struct {
	Policy    string                 `json:"policy"`
	UserType  models.UserType        `json:"user_type"`
	Score     int                    `json:"score"`
	MaxScore  int                    `json:"max_score"`
	Breakdown map[string]ScoreDetail `json:"breakdown"`
}

// ScoreDetail provides detailed information about a scoring component
type ScoreDetail struct {
	Points      int    `json:"points"`
	MaxPoints   int    `json:"max_points"`
	Triggered   bool   `json:"triggered"`
	Description string `json:"description"`
}

// ruleSet is the pair of rule tables that make up one policy
type ruleSet struct {
	booker   []ScoringRule[*models.BookerDetails]
	provider []ScoringRule[*models.ProviderDetails]
}

// ScoringEngine scores validated submissions with a single policy
type ScoringEngine struct {
	policy string
	rules  ruleSet
}

// NewScoringEngine creates a scoring engine for PolicySimple or PolicyTiered
func NewScoringEngine(policy string) (*ScoringEngine, error) {
	switch policy {
	case PolicySimple:
		return &ScoringEngine{policy: policy, rules: simpleRules()}, nil
	case PolicyTiered:
		return &ScoringEngine{policy: policy, rules: tieredRules()}, nil
	default:
		return nil, fmt.Errorf("scoring: unknown policy %q", policy)
	}
}

// Policy returns the name of the active policy
func (e *ScoringEngine) Policy() string {
	return e.policy
}

// MaxScore returns the highest score the active policy can give userType
func (e *ScoringEngine) MaxScore(userType models.UserType) int {
	switch userType {
	case models.UserTypeBooker:
		return maxOf(e.rules.booker)
	case models.UserTypeProvider:
		return maxOf(e.rules.provider)
	default:
		return 0
	}
}

// Score computes the interest score of sub. The result only depends on sub.
func (e *ScoringEngine) Score(sub *models.Submission) (*ScoreResult, error) {
	if sub == nil {
		return nil, ErrUnknownVariant
	}

	result := &ScoreResult{
		Policy:    e.policy,
		UserType:  sub.Type,
		Breakdown: make(map[string]ScoreDetail),
	}

	switch sub.Type {
	case models.UserTypeBooker:
		if sub.Booker == nil {
			return nil, fmt.Errorf("%w: booker without booker details", ErrUnknownVariant)
		}
		result.Score, result.MaxScore = apply(e.rules.booker, sub.Booker, result.Breakdown)
	case models.UserTypeProvider:
		if err := e.checkProviderShape(sub.Provider); err != nil {
			return nil, err
		}
		result.Score, result.MaxScore = apply(e.rules.provider, sub.Provider, result.Breakdown)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, sub.Type)
	}

	return result, nil
}

// checkProviderShape rejects provider shapes the active policy cannot score,
// so a simple-form provider never falls through tiered rules as a zero.
func (e *ScoringEngine) checkProviderShape(p *models.ProviderDetails) error {
	if p == nil {
		return fmt.Errorf("%w: provider without provider details", ErrUnknownVariant)
	}
	switch e.policy {
	case PolicySimple:
		if p.Simple == nil {
			return fmt.Errorf("%w: simple policy needs a simple provider profile", ErrUnknownVariant)
		}
	case PolicyTiered:
		switch p.Tier {
		case models.TierBeautySchool:
			if p.BeautySchool == nil {
				return fmt.Errorf("%w: beauty-school tier without profile", ErrUnknownVariant)
			}
		case models.TierIndependent:
			if p.Independent == nil {
				return fmt.Errorf("%w: independent tier without profile", ErrUnknownVariant)
			}
		default:
			return fmt.Errorf("%w: provider tier %q", ErrUnknownVariant, p.Tier)
		}
	}
	return nil
}

func apply[T any](rules []ScoringRule[T], subject T, breakdown map[string]ScoreDetail) (score, maxScore int) {
	for _, rule := range rules {
		points := rule.Points(subject)
		breakdown[rule.Key] = ScoreDetail{
			Points:      points,
			MaxPoints:   rule.MaxPoints,
			Triggered:   points > 0,
			Description: rule.Description,
		}
		score += points
		maxScore += rule.MaxPoints
	}
	return score, maxScore
}

func maxOf[T any](rules []ScoringRule[T]) int {
	total := 0
	for _, rule := range rules {
		total += rule.MaxPoints
	}
	return total
}

// tiers returns high if n >= highAt, low if n >= lowAt, else 0
func tiers(n, highAt, high, lowAt, low int) int {
	switch {
	case n >= highAt:
		return high
	case n >= lowAt:
		return low
	default:
		return 0
	}
}

func when(cond bool, points int) int {
	if cond {
		return points
	}
	return 0
}
