// Package intake turns a raw waitlist request into a typed submission. It
// performs no I/O; everything it rejects is rejected before scoring or storage.
package intake

import (
	"regexp"
	"strings"

	apperrors "github.com/ajharbinger/pomegranate-waitlist/internal/errors"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

// emailPattern excludes the same whitespace the web form's check does, which
// includes Unicode spaces, line separators and the BOM.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// NormalizeEmail lower-cases and trims an address. Applying it twice is the
// same as applying it once.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether the address, as sent, has the email shape.
// Surrounding whitespace makes it invalid.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validator validates submissions for one product variant
type Validator struct {
	variant string
}

// NewValidator creates a validator for config.VariantSimple or config.VariantTiered
func NewValidator(variant string) *Validator {
	return &Validator{variant: variant}
}

// Variant returns the product variant this validator accepts
func (v *Validator) Variant() string {
	return v.variant
}

// Validate checks req and returns the typed submission. Errors are
// *errors.AppError with code MISSING_FIELD, INVALID_EMAIL or INVALID_VALUE.
func (v *Validator) Validate(req *models.WaitlistRequest) (*models.Submission, error) {
	if req == nil {
		return nil, apperrors.MissingField("type")
	}

	// Common fields first, in the order the form shows them
	required := []struct{ field, value string }{
		{"email", req.Email},
		{"school", req.School},
		{"type", req.Type},
	}
	if v.variant == config.VariantTiered {
		required = append(required, struct{ field, value string }{"name", req.Name})
	}
	for _, r := range required {
		if isBlank(r.value) {
			return nil, apperrors.MissingField(r.field)
		}
	}

	if !IsValidEmail(req.Email) {
		return nil, apperrors.InvalidEmail(nil)
	}

	sub := &models.Submission{
		Type:   models.UserType(strings.TrimSpace(req.Type)),
		Email:  NormalizeEmail(req.Email),
		Name:   strings.TrimSpace(req.Name),
		School: strings.TrimSpace(req.School),
	}

	var err error
	switch sub.Type {
	case models.UserTypeBooker:
		sub.Booker, err = v.validateBooker(req)
	case models.UserTypeProvider:
		sub.Provider, err = v.validateProvider(req)
	default:
		return nil, apperrors.InvalidValue("type", req.Type)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (v *Validator) validateBooker(req *models.WaitlistRequest) (*models.BookerDetails, error) {
	services, err := validateSet("services_wanted", req.ServicesWanted, models.ServiceIDs)
	if err != nil {
		return nil, err
	}
	budget, err := requireEnum("budget", req.Budget, models.Budgets)
	if err != nil {
		return nil, err
	}
	frequency, err := requireEnum("frequency", req.Frequency, models.Frequencies)
	if err != nil {
		return nil, err
	}

	details := &models.BookerDetails{
		ServicesWanted: services,
		Budget:         budget,
		Frequency:      frequency,
	}

	// Timeline is optional: only the simple form asks for it
	if !isBlank(req.Timeline) {
		timeline, err := requireEnum("timeline", req.Timeline, models.Timelines)
		if err != nil {
			return nil, err
		}
		details.Timeline = timeline
	}
	return details, nil
}

func (v *Validator) validateProvider(req *models.WaitlistRequest) (*models.ProviderDetails, error) {
	services, err := validateSet("services_offered", req.ServicesOffered, models.ServiceIDs)
	if err != nil {
		return nil, err
	}
	availability, err := validateSet("availability", req.Availability, models.TimeSlotIDs)
	if err != nil {
		return nil, err
	}

	details := &models.ProviderDetails{
		ServicesOffered: services,
		Availability:    availability,
	}

	if v.variant != config.VariantTiered {
		details.Simple, err = validateSimpleProvider(req)
		if err != nil {
			return nil, err
		}
		return details, nil
	}

	tier, err := requireEnum("provider_tier", req.ProviderTier, models.ProviderTiers)
	if err != nil {
		return nil, err
	}
	details.Tier = tier

	switch tier {
	case models.TierBeautySchool:
		details.BeautySchool, err = validateBeautySchool(req)
	case models.TierIndependent:
		details.Independent, err = validateIndependent(req)
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

func validateSimpleProvider(req *models.WaitlistRequest) (*models.SimpleProviderProfile, error) {
	experience, err := requireEnum("experience", req.Experience, models.Experiences)
	if err != nil {
		return nil, err
	}
	backgroundCheck, err := requireEnum("background_check", req.BackgroundCheck, models.BackgroundChecks)
	if err != nil {
		return nil, err
	}
	startDate, err := requireEnum("start_date", req.StartDate, models.StartDates)
	if err != nil {
		return nil, err
	}

	profile := &models.SimpleProviderProfile{
		Experience:      experience,
		BackgroundCheck: backgroundCheck,
		StartDate:       startDate,
	}
	if req.PortfolioLink != nil {
		link := strings.TrimSpace(*req.PortfolioLink)
		profile.PortfolioLink = &link
	}
	return profile, nil
}

func validateBeautySchool(req *models.WaitlistRequest) (*models.BeautySchoolProfile, error) {
	if isBlank(req.BeautySchoolName) {
		return nil, apperrors.MissingField("beauty_school_name")
	}
	proof, err := requireEnum("enrollment_proof_type", req.EnrollmentProofType, models.ProofTypes)
	if err != nil {
		return nil, err
	}
	return &models.BeautySchoolProfile{
		SchoolName:      strings.TrimSpace(req.BeautySchoolName),
		EnrollmentProof: proof,
	}, nil
}

func validateIndependent(req *models.WaitlistRequest) (*models.IndependentProfile, error) {
	if req.IDVerificationConsent == nil || !*req.IDVerificationConsent {
		return nil, apperrors.MissingField("id_verification_consent")
	}
	if req.PortfolioLink == nil || isBlank(*req.PortfolioLink) {
		return nil, apperrors.MissingField("portfolio_link")
	}
	if req.BackgroundCheckConsent == nil || !*req.BackgroundCheckConsent {
		return nil, apperrors.MissingField("background_check_consent")
	}
	return &models.IndependentProfile{
		IDVerificationConsent:  true,
		PortfolioLink:          strings.TrimSpace(*req.PortfolioLink),
		BackgroundCheckConsent: true,
	}, nil
}

// validateSet requires at least one value, rejects values outside allowed and
// drops duplicates while keeping first-seen order.
func validateSet(field string, values []string, allowed []string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if !contains(allowed, value) {
			return nil, apperrors.InvalidValue(field, raw)
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil, apperrors.MissingField(field)
	}
	return out, nil
}

func requireEnum[T ~string](field, raw string, allowed []T) (T, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", apperrors.MissingField(field)
	}
	if !contains(allowed, T(value)) {
		return "", apperrors.InvalidValue(field, raw)
	}
	return T(value), nil
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
