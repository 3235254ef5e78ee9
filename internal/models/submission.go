package models

import "strings"

// UserType is the discriminator of a waitlist submission
type UserType string

const (
	UserTypeBooker   UserType = "booker"
	UserTypeProvider UserType = "provider"
)

// ProviderTier splits providers in the tiered form
type ProviderTier string

const (
	TierBeautySchool ProviderTier = "beauty-school"
	TierIndependent  ProviderTier = "independent"
)

// Booker answers
type (
	Budget    string
	Frequency string
	Timeline  string
)

const (
	BudgetUnder25 Budget = "under25"
	Budget25To50  Budget = "25to50"
	Budget50To100 Budget = "50to100"
	BudgetOver100 Budget = "over100"
)

const (
	FrequencyWeekly       Frequency = "weekly"
	FrequencyBiweekly     Frequency = "biweekly"
	Frequency2To3Monthly  Frequency = "2to3monthly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencyOccasionally Frequency = "occasionally"
)

const (
	TimelineASAP         Timeline = "asap"
	TimelineSemester     Timeline = "semester"
	TimelineNextSemester Timeline = "nextsemester"
	TimelineJustCurious  Timeline = "justcurious"
)

// Provider answers, simple form
type (
	Experience      string
	BackgroundCheck string
	StartDate       string
)

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
	ExperienceLicensed     Experience = "licensed"
)

const (
	BackgroundCheckYes   BackgroundCheck = "yes"
	BackgroundCheckNo    BackgroundCheck = "no"
	BackgroundCheckMaybe BackgroundCheck = "maybe"
)

const (
	StartDateASAP      StartDate = "asap"
	StartDate2Weeks    StartDate = "2weeks"
	StartDateMonth     StartDate = "month"
	StartDateExploring StartDate = "exploring"
)

// EnrollmentProofType is how a beauty-school provider proves enrollment
type EnrollmentProofType string

const (
	ProofStudentID        EnrollmentProofType = "student_id"
	ProofEnrollmentLetter EnrollmentProofType = "enrollment_letter"
	ProofTranscript       EnrollmentProofType = "transcript"
)

var (
	// ServiceIDs are the services a booker can want or a provider can offer
	ServiceIDs = []string{"hair", "nails", "lashes", "makeup", "skincare", "waxing"}

	// TimeSlotIDs are the provider availability slots
	TimeSlotIDs = []string{
		"weekday_morning", "weekday_afternoon", "weekday_evening",
		"weekend_morning", "weekend_afternoon", "weekend_evening",
	}

	Budgets          = []Budget{BudgetUnder25, Budget25To50, Budget50To100, BudgetOver100}
	Frequencies      = []Frequency{FrequencyWeekly, FrequencyBiweekly, Frequency2To3Monthly, FrequencyMonthly, FrequencyOccasionally}
	Timelines        = []Timeline{TimelineASAP, TimelineSemester, TimelineNextSemester, TimelineJustCurious}
	Experiences      = []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceLicensed}
	BackgroundChecks = []BackgroundCheck{BackgroundCheckYes, BackgroundCheckNo, BackgroundCheckMaybe}
	StartDates       = []StartDate{StartDateASAP, StartDate2Weeks, StartDateMonth, StartDateExploring}
	ProofTypes       = []EnrollmentProofType{ProofStudentID, ProofEnrollmentLetter, ProofTranscript}
	ProviderTiers    = []ProviderTier{TierBeautySchool, TierIndependent}
)

// Submission is one validated waitlist entry. Exactly one of Booker and
// Provider is set, matching Type.
type Submission struct {
	Type     UserType
	Email    string // normalized
	Name     string // trimmed, may be empty in the simple form
	School   string // trimmed
	Booker   *BookerDetails
	Provider *ProviderDetails
}

// BookerDetails holds what a booker is looking for
type BookerDetails struct {
	ServicesWanted []string
	Budget         Budget
	Frequency      Frequency
	Timeline       Timeline // empty when not asked
}

// ProviderDetails holds what a provider offers. Exactly one of Simple,
// BeautySchool and Independent is set.
type ProviderDetails struct {
	ServicesOffered []string
	Availability    []string
	Tier            ProviderTier // empty for the simple form

	Simple       *SimpleProviderProfile
	BeautySchool *BeautySchoolProfile
	Independent  *IndependentProfile
}

// SimpleProviderProfile is the untiered provider form
type SimpleProviderProfile struct {
	Experience      Experience
	PortfolioLink   *string
	BackgroundCheck BackgroundCheck
	StartDate       StartDate
}

// BeautySchoolProfile is filled by students of a beauty school
type BeautySchoolProfile struct {
	SchoolName      string
	EnrollmentProof EnrollmentProofType
}

// IndependentProfile is filled by independent providers
type IndependentProfile struct {
	IDVerificationConsent  bool
	PortfolioLink          string
	BackgroundCheckConsent bool
}

// HasPortfolio reports whether the simple profile carries a non-blank link
func (p *SimpleProviderProfile) HasPortfolio() bool {
	return p.PortfolioLink != nil && !isBlank(*p.PortfolioLink)
}

// HasPortfolio reports whether the independent profile carries a non-blank link
func (p *IndependentProfile) HasPortfolio() bool {
	return !isBlank(p.PortfolioLink)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
