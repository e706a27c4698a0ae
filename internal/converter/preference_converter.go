package converter

import (
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
)

func PreferenceToResponse(pref *entity.AccountPreference) *dto.PreferencesResponse {
	if pref == nil {
		return nil
	}

	response := &dto.PreferencesResponse{
		Language: pref.Language,
		Country:  pref.Country,
		Privacy: dto.PrivacySettings{
			ShareHistory:        pref.ShareHistory,
			ShareMedical:        pref.ShareMedical,
			Recommendations:     pref.Recommendations,
			PersonalisedContent: pref.PersonalisedContent,
			MapDisplay:          pref.MapDisplay,
			ServiceImprovement:  pref.ServiceImprovement,
		},
		Notifications: dto.NotificationSettings{
			Push:           pref.PushEnabled,
			Email:          pref.EmailEnabled,
			AdvicePush:     pref.AdvicePush,
			MarketingPush:  pref.MarketingPush,
			AdviceEmail:    pref.AdviceEmail,
			MarketingEmail: pref.MarketingEmail,
		},
		Cookies: dto.CookieSettings{
			Necessary:   pref.CookiesNecessary,
			Audience:    pref.CookiesAudience,
			Prevention:  pref.CookiesPrevention,
			Content:     pref.CookiesContent,
			Advertising: pref.CookiesAdvertising,
		},
	}
	if !pref.UpdatedAt.IsZero() {
		updatedAt := pref.UpdatedAt
		response.UpdatedAt = &updatedAt
	}

	return response
}

// ApplyPreferenceRequest copies the request onto pref. Necessary cookies
// stay on.
func ApplyPreferenceRequest(pref *entity.AccountPreference, req *dto.UpdatePreferencesRequest) {
	pref.Language = req.Language
	pref.Country = req.Country

	pref.ShareHistory = req.Privacy.ShareHistory
	pref.ShareMedical = req.Privacy.ShareMedical
	pref.Recommendations = req.Privacy.Recommendations
	pref.PersonalisedContent = req.Privacy.PersonalisedContent
	pref.MapDisplay = req.Privacy.MapDisplay
	pref.ServiceImprovement = req.Privacy.ServiceImprovement

	pref.PushEnabled = req.Notifications.Push
	pref.EmailEnabled = req.Notifications.Email
	pref.AdvicePush = req.Notifications.AdvicePush
	pref.MarketingPush = req.Notifications.MarketingPush
	pref.AdviceEmail = req.Notifications.AdviceEmail
	pref.MarketingEmail = req.Notifications.MarketingEmail

	pref.CookiesNecessary = true
	pref.CookiesAudience = req.Cookies.Audience
	pref.CookiesPrevention = req.Cookies.Prevention
	pref.CookiesContent = req.Cookies.Content
	pref.CookiesAdvertising = req.Cookies.Advertising
}
