package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
)

func mustEngine(t *testing.T, policy string) *ScoringEngine {
	t.Helper()
	engine, err := NewScoringEngine(policy)
	if err != nil {
		t.Fatalf("Failed to create %s engine: %v", policy, err)
	}
	return engine
}

func strPtr(s string) *string { return &s }

func booker(services []string, budget models.Budget, freq models.Frequency, timeline models.Timeline) *models.Submission {
	return &models.Submission{
		Type:   models.UserTypeBooker,
		Email:  "booker@campus.edu",
		School: "State University",
		Booker: &models.BookerDetails{
			ServicesWanted: services,
			Budget:         budget,
			Frequency:      freq,
			Timeline:       timeline,
		},
	}
}

func simpleProvider(profile models.SimpleProviderProfile, services, slots []string) *models.Submission {
	return &models.Submission{
		Type:   models.UserTypeProvider,
		Email:  "provider@campus.edu",
		School: "State University",
		Provider: &models.ProviderDetails{
			ServicesOffered: services,
			Availability:    slots,
			Simple:          &profile,
		},
	}
}

func independent(profile models.IndependentProfile, services, slots []string) *models.Submission {
	return &models.Submission{
		Type:   models.UserTypeProvider,
		Email:  "indie@campus.edu",
		Name:   "Indie",
		School: "State University",
		Provider: &models.ProviderDetails{
			ServicesOffered: services,
			Availability:    slots,
			Tier:            models.TierIndependent,
			Independent:     &profile,
		},
	}
}

func beautySchool(services, slots []string) *models.Submission {
	return &models.Submission{
		Type:   models.UserTypeProvider,
		Email:  "student@beauty.edu",
		Name:   "Student",
		School: "State University",
		Provider: &models.ProviderDetails{
			ServicesOffered: services,
			Availability:    slots,
			Tier:            models.TierBeautySchool,
			BeautySchool: &models.BeautySchoolProfile{
				SchoolName:      "Paul Mitchell",
				EnrollmentProof: models.ProofStudentID,
			},
		},
	}
}

func TestNewScoringEngine_UnknownPolicy(t *testing.T) {
	if _, err := NewScoringEngine("blended"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}

func TestMaxScores(t *testing.T) {
	tests := []struct {
		policy   string
		userType models.UserType
		want     int
	}{
		{PolicySimple, models.UserTypeBooker, 8},
		{PolicySimple, models.UserTypeProvider, 8},
		{PolicyTiered, models.UserTypeBooker, 7},
		{PolicyTiered, models.UserTypeProvider, 10},
	}

	for _, tt := range tests {
		engine := mustEngine(t, tt.policy)
		if got := engine.MaxScore(tt.userType); got != tt.want {
			t.Errorf("%s/%s: expected max %d, got %d", tt.policy, tt.userType, tt.want, got)
		}
	}
}

func TestSimplePolicy_Scenarios(t *testing.T) {
	engine := mustEngine(t, PolicySimple)

	t.Run("eager booker scores 8", func(t *testing.T) {
		sub := booker([]string{"hair", "nails"}, models.BudgetOver100, models.Frequency2To3Monthly, models.TimelineASAP)
		result, err := engine.Score(sub)
		if err != nil {
			t.Fatalf("Failed to score: %v", err)
		}
		if result.Score != 8 {
			t.Errorf("Expected score 8 (3+2+2+1), got %d", result.Score)
		}
		for key, detail := range result.Breakdown {
			if !detail.Triggered {
				t.Errorf("Expected rule %s to be triggered", key)
			}
		}
	})

	t.Run("asap beginner provider scores 3", func(t *testing.T) {
		sub := simpleProvider(models.SimpleProviderProfile{
			Experience:      models.ExperienceBeginner,
			PortfolioLink:   strPtr(""),
			BackgroundCheck: models.BackgroundCheckNo,
			StartDate:       models.StartDateASAP,
		}, []string{"nails"}, []string{"weekday_evening"})

		result, err := engine.Score(sub)
		if err != nil {
			t.Fatalf("Failed to score: %v", err)
		}
		if result.Score != 3 {
			t.Errorf("Expected score 3 (ASAP only), got %d", result.Score)
		}
		if result.Breakdown["portfolio"].Triggered {
			t.Error("Empty portfolio link must not earn the portfolio bonus")
		}
	})

	t.Run("null portfolio is not an error", func(t *testing.T) {
		sub := simpleProvider(models.SimpleProviderProfile{
			Experience:      models.ExperienceLicensed,
			BackgroundCheck: models.BackgroundCheckYes,
			StartDate:       models.StartDateMonth,
		}, []string{"hair"}, []string{"weekend_morning"})

		result, err := engine.Score(sub)
		if err != nil {
			t.Fatalf("Failed to score: %v", err)
		}
		if result.Score != 3 {
			t.Errorf("Expected score 3 (experience + background check), got %d", result.Score)
		}
	})

	t.Run("single service and low budget", func(t *testing.T) {
		sub := booker([]string{"lashes"}, models.Budget25To50, models.FrequencyOccasionally, "")
		result, err := engine.Score(sub)
		if err != nil {
			t.Fatalf("Failed to score: %v", err)
		}
		if result.Score != 0 {
			t.Errorf("Expected score 0, got %d", result.Score)
		}
	})
}

func TestTieredPolicy_Scenarios(t *testing.T) {
	engine := mustEngine(t, PolicyTiered)

	tests := []struct {
		name string
		sub  *models.Submission
		want int
	}{
		{
			name: "booker minimum is the engagement point",
			sub:  booker([]string{"hair"}, models.BudgetUnder25, models.FrequencyOccasionally, ""),
			want: 1,
		},
		{
			name: "booker maximum",
			sub:  booker([]string{"hair", "nails", "makeup"}, models.BudgetOver100, models.FrequencyWeekly, ""),
			want: 7,
		},
		{
			name: "booker partial credit",
			sub:  booker([]string{"hair", "nails"}, models.Budget50To100, models.FrequencyMonthly, ""),
			want: 4,
		},
		{
			name: "2to3monthly earns nothing under tiered rules",
			sub:  booker([]string{"hair"}, models.BudgetUnder25, models.Frequency2To3Monthly, models.TimelineASAP),
			want: 1,
		},
		{
			name: "fully verified independent provider",
			sub: independent(models.IndependentProfile{
				IDVerificationConsent:  true,
				PortfolioLink:          "https://instagram.com/nails",
				BackgroundCheckConsent: true,
			}, []string{"hair", "nails", "lashes"}, []string{"weekday_morning", "weekday_evening", "weekend_morning", "weekend_evening"}),
			want: 10,
		},
		{
			name: "independent with blank portfolio",
			sub: independent(models.IndependentProfile{
				IDVerificationConsent: true,
				PortfolioLink:         "   ",
			}, []string{"nails"}, []string{"weekday_morning"}),
			want: 3,
		},
		{
			name: "beauty school base",
			sub:  beautySchool([]string{"nails"}, []string{"weekday_morning"}),
			want: 2,
		},
		{
			name: "beauty school with breadth",
			sub:  beautySchool([]string{"nails", "hair"}, []string{"weekday_morning", "weekday_evening"}),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Score(tt.sub)
			if err != nil {
				t.Fatalf("Failed to score: %v", err)
			}
			if result.Score != tt.want {
				t.Errorf("Expected score %d, got %d (breakdown %+v)", tt.want, result.Score, result.Breakdown)
			}
			if result.Policy != PolicyTiered {
				t.Errorf("Expected policy %s, got %s", PolicyTiered, result.Policy)
			}
		})
	}
}

func TestBookerScoreBounds(t *testing.T) {
	serviceSets := [][]string{
		{"hair"},
		{"hair", "nails"},
		{"hair", "nails", "lashes"},
		models.ServiceIDs,
	}
	timelines := append([]models.Timeline{""}, models.Timelines...)

	bounds := map[string][2]int{
		PolicySimple: {0, 8},
		PolicyTiered: {1, 7},
	}

	for policy, bound := range bounds {
		engine := mustEngine(t, policy)
		for _, services := range serviceSets {
			for _, budget := range models.Budgets {
				for _, freq := range models.Frequencies {
					for _, timeline := range timelines {
						result, err := engine.Score(booker(services, budget, freq, timeline))
						if err != nil {
							t.Fatalf("Failed to score: %v", err)
						}
						if result.Score < bound[0] || result.Score > bound[1] {
							t.Errorf("%s: score %d outside [%d, %d] for %v/%s/%s/%s",
								policy, result.Score, bound[0], bound[1], services, budget, freq, timeline)
						}
					}
				}
			}
		}
	}
}

func TestProviderScoreBounds(t *testing.T) {
	engine := mustEngine(t, PolicySimple)
	links := []*string{nil, strPtr(""), strPtr("https://portfolio.example")}

	for _, exp := range models.Experiences {
		for _, check := range models.BackgroundChecks {
			for _, start := range models.StartDates {
				for _, link := range links {
					result, err := engine.Score(simpleProvider(models.SimpleProviderProfile{
						Experience:      exp,
						PortfolioLink:   link,
						BackgroundCheck: check,
						StartDate:       start,
					}, []string{"hair"}, []string{"weekday_morning"}))
					if err != nil {
						t.Fatalf("Failed to score: %v", err)
					}
					if result.Score < 0 || result.Score > 8 {
						t.Errorf("Simple provider score %d outside [0, 8]", result.Score)
					}
				}
			}
		}
	}

	tiered := mustEngine(t, PolicyTiered)
	for n := 1; n <= len(models.ServiceIDs); n++ {
		for m := 1; m <= len(models.TimeSlotIDs); m++ {
			services, slots := models.ServiceIDs[:n], models.TimeSlotIDs[:m]
			for _, sub := range []*models.Submission{
				beautySchool(services, slots),
				independent(models.IndependentProfile{IDVerificationConsent: true, PortfolioLink: "x", BackgroundCheckConsent: true}, services, slots),
				independent(models.IndependentProfile{IDVerificationConsent: true}, services, slots),
			} {
				result, err := tiered.Score(sub)
				if err != nil {
					t.Fatalf("Failed to score: %v", err)
				}
				if result.Score < 0 || result.Score > 10 {
					t.Errorf("Tiered provider score %d outside [0, 10]", result.Score)
				}
			}
		}
	}
}

func TestAddingPortfolioNeverLowersScore(t *testing.T) {
	simple := mustEngine(t, PolicySimple)
	for _, exp := range models.Experiences {
		without := simpleProvider(models.SimpleProviderProfile{
			Experience: exp, BackgroundCheck: models.BackgroundCheckMaybe, StartDate: models.StartDate2Weeks,
		}, []string{"hair"}, []string{"weekday_morning"})
		with := simpleProvider(models.SimpleProviderProfile{
			Experience: exp, BackgroundCheck: models.BackgroundCheckMaybe, StartDate: models.StartDate2Weeks,
			PortfolioLink: strPtr("https://portfolio.example"),
		}, []string{"hair"}, []string{"weekday_morning"})

		a, _ := simple.Score(without)
		b, _ := simple.Score(with)
		if b.Score < a.Score {
			t.Errorf("Portfolio lowered score for %s: %d -> %d", exp, a.Score, b.Score)
		}
	}

	tiered := mustEngine(t, PolicyTiered)
	a, _ := tiered.Score(independent(models.IndependentProfile{IDVerificationConsent: true}, []string{"hair"}, []string{"weekday_morning"}))
	b, _ := tiered.Score(independent(models.IndependentProfile{IDVerificationConsent: true, PortfolioLink: "https://x.example"}, []string{"hair"}, []string{"weekday_morning"}))
	if b.Score < a.Score {
		t.Errorf("Portfolio lowered tiered score: %d -> %d", a.Score, b.Score)
	}
}

func TestMoreSelectionsNeverLowerScore(t *testing.T) {
	engine := mustEngine(t, PolicyTiered)
	previous := -1
	for n := 1; n <= len(models.ServiceIDs); n++ {
		result, err := engine.Score(beautySchool(models.ServiceIDs[:n], models.TimeSlotIDs[:n]))
		if err != nil {
			t.Fatalf("Failed to score: %v", err)
		}
		if result.Score < previous {
			t.Errorf("Score dropped from %d to %d at %d selections", previous, result.Score, n)
		}
		previous = result.Score
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	engine := mustEngine(t, PolicyTiered)
	sub := independent(models.IndependentProfile{IDVerificationConsent: true, PortfolioLink: "https://x.example"},
		[]string{"hair", "nails"}, []string{"weekday_morning", "weekend_morning"})

	first, err := engine.Score(sub)
	if err != nil {
		t.Fatalf("Failed to score: %v", err)
	}
	second, err := engine.Score(sub)
	if err != nil {
		t.Fatalf("Failed to score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestScore_UnknownVariants(t *testing.T) {
	simple := mustEngine(t, PolicySimple)
	tiered := mustEngine(t, PolicyTiered)

	tests := []struct {
		name   string
		engine *ScoringEngine
		sub    *models.Submission
	}{
		{"nil submission", simple, nil},
		{"unknown tag", simple, &models.Submission{Type: "admin"}},
		{"booker without details", simple, &models.Submission{Type: models.UserTypeBooker}},
		{"tiered provider under simple policy", simple, beautySchool([]string{"hair"}, []string{"weekday_morning"})},
		{"simple provider under tiered policy", tiered, simpleProvider(models.SimpleProviderProfile{StartDate: models.StartDateASAP}, []string{"hair"}, []string{"weekday_morning"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Score(tt.sub)
			if !errors.Is(err, ErrUnknownVariant) {
				t.Errorf("Expected ErrUnknownVariant, got %v", err)
			}
		})
	}
}
