package models

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistRequest is the raw POST /waitlist body. Every field is optional at
// this level; the intake validator decides what is required.
type WaitlistRequest struct {
	Type   string `json:"type"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	School string `json:"school"`

	// Booker
	ServicesWanted []string `json:"services_wanted"`
	Budget         string   `json:"budget"`
	Frequency      string   `json:"frequency"`
	Timeline       string   `json:"timeline"`

	// Provider, both forms
	ServicesOffered []string `json:"services_offered"`
	Availability    []string `json:"availability"`
	PortfolioLink   *string  `json:"portfolio_link"`

	// Provider, simple form
	Experience      string `json:"experience"`
	BackgroundCheck string `json:"background_check"`
	StartDate       string `json:"start_date"`

	// Provider, tiered form
	ProviderTier           string `json:"provider_tier"`
	BeautySchoolName       string `json:"beauty_school_name"`
	EnrollmentProofType    string `json:"enrollment_proof_type"`
	IDVerificationConsent  *bool  `json:"id_verification_consent"`
	BackgroundCheckConsent *bool  `json:"background_check_consent"`
}

// WaitlistEntry is the stored record. Fields that do not belong to the
// entry's user type (or provider tier) are nil and persist as NULL.
type WaitlistEntry struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	Name          *string   `json:"name,omitempty" db:"name"`
	School        string    `json:"school" db:"school"`
	UserType      UserType  `json:"user_type" db:"user_type"`
	InterestScore int       `json:"interest_score" db:"interest_score"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Booker
	ServicesWanted []string   `json:"services_wanted,omitempty" db:"services_wanted"`
	Budget         *Budget    `json:"budget,omitempty" db:"budget"`
	Frequency      *Frequency `json:"frequency,omitempty" db:"frequency"`
	Timeline       *Timeline  `json:"timeline,omitempty" db:"timeline"`

	// Provider
	ProviderTier    *ProviderTier `json:"provider_tier,omitempty" db:"provider_tier"`
	ServicesOffered []string      `json:"services_offered,omitempty" db:"services_offered"`
	Availability    []string      `json:"availability,omitempty" db:"availability"`
	PortfolioLink   *string       `json:"portfolio_link,omitempty" db:"portfolio_link"`

	Experience      *Experience      `json:"experience,omitempty" db:"experience"`
	BackgroundCheck *BackgroundCheck `json:"background_check,omitempty" db:"background_check"`
	StartDate       *StartDate       `json:"start_date,omitempty" db:"start_date"`

	BeautySchoolName       *string              `json:"beauty_school_name,omitempty" db:"beauty_school_name"`
	EnrollmentProofType    *EnrollmentProofType `json:"enrollment_proof_type,omitempty" db:"enrollment_proof_type"`
	IDVerificationConsent  *bool                `json:"id_verification_consent,omitempty" db:"id_verification_consent"`
	BackgroundCheckConsent *bool                `json:"background_check_consent,omitempty" db:"background_check_consent"`
}

// WaitlistStatus is the read-path projection of an entry
type WaitlistStatus struct {
	OnWaitlist   bool          `json:"on_waitlist"`
	UserType     UserType      `json:"user_type,omitempty"`
	ProviderTier *ProviderTier `json:"provider_tier,omitempty"`
	JoinedAt     *time.Time    `json:"joined_at,omitempty"`
}

// JoinResponse is the 201 body of POST /waitlist
type JoinResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	InterestScore int    `json:"interest_score"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// LeadFilter selects entries for a lead export. Zero values match everything.
type LeadFilter struct {
	UserType     UserType     `json:"user_type,omitempty"`
	ProviderTier ProviderTier `json:"provider_tier,omitempty"`
	MinScore     int          `json:"min_score,omitempty"`
	JoinedAfter  *time.Time   `json:"joined_after,omitempty"`
	Limit        int          `json:"limit,omitempty"`
}
