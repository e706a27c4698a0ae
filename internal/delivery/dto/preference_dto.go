package dto

import "time"

type PrivacySettings struct {
	ShareHistory        bool `json:"shareHistory"`
	ShareMedical        bool `json:"shareMedical"`
	Recommendations     bool `json:"recommendations"`
	PersonalisedContent bool `json:"personalisedContent"`
	MapDisplay          bool `json:"mapDisplay"`
	ServiceImprovement  bool `json:"serviceImprovement"`
}

type NotificationSettings struct {
	Push           bool `json:"push"`
	Email          bool `json:"email"`
	AdvicePush     bool `json:"advicePush"`
	MarketingPush  bool `json:"marketingPush"`
	AdviceEmail    bool `json:"adviceEmail"`
	MarketingEmail bool `json:"marketingEmail"`
}

// CookieSettings.Necessary is forced to true on update
type CookieSettings struct {
	Necessary   bool `json:"necessary"`
	Audience    bool `json:"audience"`
	Prevention  bool `json:"prevention"`
	Content     bool `json:"content"`
	Advertising bool `json:"advertising"`
}

// Request DTOs

type UpdatePreferencesRequest struct {
	Language      string               `json:"language" validate:"required,oneof=fr en ar"`
	Country       string               `json:"country" validate:"required,oneof=MA FR BE"`
	Privacy       PrivacySettings      `json:"privacy"`
	Notifications NotificationSettings `json:"notifications"`
	Cookies       CookieSettings       `json:"cookies"`
}

// Response DTOs

type PreferencesResponse struct {
	Language      string               `json:"language"`
	Country       string               `json:"country"`
	Privacy       PrivacySettings      `json:"privacy"`
	Notifications NotificationSettings `json:"notifications"`
	Cookies       CookieSettings       `json:"cookies"`
	UpdatedAt     *time.Time           `json:"updatedAt,omitempty"`
}
