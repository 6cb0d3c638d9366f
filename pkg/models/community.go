package models

// ContributionRights describes what the caller may review or suggest.
// Guests get the zero value.
type ContributionRights struct {
	CanReviewTranslationForLanguageCodes []string `json:"can_review_translation_for_language_codes"`
	CanReviewVoiceoverForLanguageCodes   []string `json:"can_review_voiceover_for_language_codes"`
	CanReviewQuestions                   bool     `json:"can_review_questions"`
	CanSuggestQuestions                  bool     `json:"can_suggest_questions"`
}

// FeaturedLanguage is a translation language highlighted on the dashboard.
type FeaturedLanguage struct {
	LanguageCode string `json:"language_code"`
	Explanation  string `json:"explanation"`
}

// ActivityRequest identifies one entity in an Android batch lookup.
type ActivityRequest struct {
	ID           string `json:"id"`
	Version      *int   `json:"version,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// ActivityResult carries one fetched entity, with a null payload when the
// entity does not exist at the requested version.
type ActivityResult struct {
	ID           string      `json:"id"`
	Version      *int        `json:"version,omitempty"`
	LanguageCode string      `json:"language_code,omitempty"`
	Payload      interface{} `json:"payload"`
}
