package entity

import (
	"time"

	"github.com/google/uuid"
)

var (
	SupportedLanguages = []string{"fr", "en", "ar"}
	SupportedCountries = []string{"MA", "FR", "BE"}
)

// AccountPreference stores one user's language, privacy, notification and
// cookie choices
type AccountPreference struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Language string    `gorm:"type:varchar(2);not null;default:'fr'" json:"language"`
	Country  string    `gorm:"type:varchar(2);not null;default:'MA'" json:"country"`

	// Privacy
	ShareHistory        bool `gorm:"not null" json:"share_history"`
	ShareMedical        bool `gorm:"not null" json:"share_medical"`
	Recommendations     bool `gorm:"not null" json:"recommendations"`
	PersonalisedContent bool `gorm:"not null" json:"personalised_content"`
	MapDisplay          bool `gorm:"not null" json:"map_display"`
	ServiceImprovement  bool `gorm:"not null" json:"service_improvement"`

	// Notifications
	PushEnabled    bool `gorm:"not null" json:"push_enabled"`
	EmailEnabled   bool `gorm:"not null" json:"email_enabled"`
	AdvicePush     bool `gorm:"not null" json:"advice_push"`
	MarketingPush  bool `gorm:"not null" json:"marketing_push"`
	AdviceEmail    bool `gorm:"not null" json:"advice_email"`
	MarketingEmail bool `gorm:"not null" json:"marketing_email"`

	// Cookies
	CookiesNecessary   bool `gorm:"not null;default:true" json:"cookies_necessary"`
	CookiesAudience    bool `gorm:"not null" json:"cookies_audience"`
	CookiesPrevention  bool `gorm:"not null" json:"cookies_prevention"`
	CookiesContent     bool `gorm:"not null" json:"cookies_content"`
	CookiesAdvertising bool `gorm:"not null" json:"cookies_advertising"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AccountPreference) TableName() string {
	return "account_preferences"
}

// DefaultAccountPreference is what a user sees before saving anything
func DefaultAccountPreference(userID uuid.UUID) *AccountPreference {
	return &AccountPreference{
		UserID:              userID,
		Language:            "fr",
		Country:             "MA",
		ShareHistory:        false,
		ShareMedical:        true,
		Recommendations:     false,
		PersonalisedContent: true,
		MapDisplay:          true,
		ServiceImprovement:  true,
		PushEnabled:         true,
		EmailEnabled:        true,
		AdvicePush:          true,
		MarketingPush:       true,
		AdviceEmail:         true,
		MarketingEmail:      true,
		CookiesNecessary:    true,
		CookiesAudience:     true,
		CookiesPrevention:   true,
		CookiesContent:      true,
		CookiesAdvertising:  false,
	}
}
