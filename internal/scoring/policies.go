package scoring

import "github.com/ajharbinger/pomegranate-waitlist/internal/models"

// simpleRules is the policy for the untiered form. Bookers and providers both
// max out at 8.
func simpleRules() ruleSet {
	return ruleSet{
		booker: []ScoringRule[*models.BookerDetails]{
			{
				Key:         "timeline_asap",
				Description: "Wants to book as soon as possible",
				MaxPoints:   3,
				Points: func(b *models.BookerDetails) int {
					return when(b.Timeline == models.TimelineASAP, 3)
				},
			},
			{
				Key:         "frequency_2to3_monthly",
				Description: "Would book 2-3 times a month",
				MaxPoints:   2,
				Points: func(b *models.BookerDetails) int {
					return when(b.Frequency == models.Frequency2To3Monthly, 2)
				},
			},
			{
				Key:         "multiple_services",
				Description: "Wants two or more services",
				MaxPoints:   2,
				Points: func(b *models.BookerDetails) int {
					return when(len(b.ServicesWanted) >= 2, 2)
				},
			},
			{
				Key:         "higher_budget",
				Description: "Budget of $50 or more",
				MaxPoints:   1,
				Points: func(b *models.BookerDetails) int {
					return when(b.Budget == models.Budget50To100 || b.Budget == models.BudgetOver100, 1)
				},
			},
		},
		provider: []ScoringRule[*models.ProviderDetails]{
			{
				Key:         "start_asap",
				Description: "Can start as soon as possible",
				MaxPoints:   3,
				Points: func(p *models.ProviderDetails) int {
					return when(p.Simple.StartDate == models.StartDateASAP, 3)
				},
			},
			{
				Key:         "portfolio",
				Description: "Shared a portfolio link",
				MaxPoints:   2,
				Points: func(p *models.ProviderDetails) int {
					return when(p.Simple.HasPortfolio(), 2)
				},
			},
			{
				Key:         "experienced",
				Description: "Intermediate, advanced or licensed",
				MaxPoints:   2,
				Points: func(p *models.ProviderDetails) int {
					switch p.Simple.Experience {
					case models.ExperienceIntermediate, models.ExperienceAdvanced, models.ExperienceLicensed:
						return 2
					}
					return 0
				},
			},
			{
				Key:         "background_check",
				Description: "Agreed to a background check",
				MaxPoints:   1,
				Points: func(p *models.ProviderDetails) int {
					return when(p.Simple.BackgroundCheck == models.BackgroundCheckYes, 1)
				},
			},
		},
	}
}

// tieredRules is the policy for the beauty-school / independent form. Bookers
// score 1 to 7, providers up to 10.
func tieredRules() ruleSet {
	return ruleSet{
		booker: []ScoringRule[*models.BookerDetails]{
			{
				Key:         "multiple_services",
				Description: "Three or more services (two earn 1)",
				MaxPoints:   2,
				Points: func(b *models.BookerDetails) int {
					return tiers(len(b.ServicesWanted), 3, 2, 2, 1)
				},
			},
			{
				Key:         "high_frequency",
				Description: "Weekly or biweekly bookings (monthly earns 1)",
				MaxPoints:   2,
				Points: func(b *models.BookerDetails) int {
					switch b.Frequency {
					case models.FrequencyWeekly, models.FrequencyBiweekly:
						return 2
					case models.FrequencyMonthly:
						return 1
					}
					return 0
				},
			},
			{
				Key:         "higher_budget",
				Description: "Budget over $100 ($50-$100 earns 1)",
				MaxPoints:   2,
				Points: func(b *models.BookerDetails) int {
					switch b.Budget {
					case models.BudgetOver100:
						return 2
					case models.Budget50To100:
						return 1
					}
					return 0
				},
			},
			{
				Key:         "engagement",
				Description: "Completed the waitlist form",
				MaxPoints:   1,
				Points:      func(*models.BookerDetails) int { return 1 },
			},
		},
		provider: []ScoringRule[*models.ProviderDetails]{
			{
				Key:         "provider_tier",
				Description: "Independent providers carry more verification (beauty school earns 2)",
				MaxPoints:   3,
				Points: func(p *models.ProviderDetails) int {
					if p.Tier == models.TierIndependent {
						return 3
					}
					return 2
				},
			},
			{
				Key:         "portfolio",
				Description: "Independent provider shared a portfolio link",
				MaxPoints:   2,
				Points: func(p *models.ProviderDetails) int {
					return when(p.Independent != nil && p.Independent.HasPortfolio(), 2)
				},
			},
			{
				Key:         "background_check_consent",
				Description: "Independent provider consented to a background check",
				MaxPoints:   1,
				Points: func(p *models.ProviderDetails) int {
					return when(p.Independent != nil && p.Independent.BackgroundCheckConsent, 1)
				},
			},
			{
				Key:         "multiple_services",
				Description: "Offers three or more services (two earn 1)",
				MaxPoints:   2,
				Points: func(p *models.ProviderDetails) int {
					return tiers(len(p.ServicesOffered), 3, 2, 2, 1)
				},
			},
			{
				Key:         "high_availability",
				Description: "Four or more availability slots (two earn 1)",
				MaxPoints:   2,
				Points: func(p *models.ProviderDetails) int {
					return tiers(len(p.Availability), 4, 2, 2, 1)
				},
			},
		},
	}
}
