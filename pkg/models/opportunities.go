package models

// SkillOpportunity is a question contribution opportunity as returned to
// the dashboard frontend.
type SkillOpportunity struct {
	ID               string `json:"id"`
	SkillDescription string `json:"skill_description"`
	QuestionCount    int    `json:"question_count"`
	TopicName        string `json:"topic_name"`
}

// TranslationOpportunity is a translation contribution opportunity scoped
// to a target language.
type TranslationOpportunity struct {
	ID                        string         `json:"id"`
	TopicName                 string         `json:"topic_name"`
	StoryTitle                string         `json:"story_title"`
	ChapterTitle              string         `json:"chapter_title"`
	ContentCount              int            `json:"content_count"`
	TranslationCounts         map[string]int `json:"translation_counts"`
	TranslationInReviewCounts map[string]int `json:"translation_in_review_counts"`
	IsPinned                  bool           `json:"is_pinned"`
}

// OpportunityPage is the paginated envelope shared by the opportunity
// listing endpoints.
type OpportunityPage struct {
	Opportunities []interface{} `json:"opportunities"`
	NextCursor    string        `json:"next_cursor"`
	More          bool          `json:"more"`
}

// PinnedOpportunityRequest pins or unpins an opportunity for a
// (user, language, topic) scope. An empty OpportunityID unpins.
type PinnedOpportunityRequest struct {
	TopicID       string `json:"topic_id"`
	LanguageCode  string `json:"language_code"`
	OpportunityID string `json:"opportunity_id"`
}

// TranslatableItem is a single piece of translatable exploration content.
type TranslatableItem struct {
	Content       string `json:"content"`
	DataFormat    string `json:"data_format"`
	ContentType   string `json:"content_type"`
	InteractionID string `json:"interaction_id,omitempty"`
	RuleType      string `json:"rule_type,omitempty"`
}

// TranslatableTexts maps state name to content id to translatable item.
type TranslatableTexts struct {
	StateNamesToContentIDMapping map[string]map[string]TranslatableItem `json:"state_names_to_content_id_mapping"`
	Version                      int                                    `json:"version"`
}

// MachineTranslationResponse maps each requested content id to its machine
// translation, or null when no translation could be produced.
type MachineTranslationResponse struct {
	TranslatedTexts map[string]*string `json:"translated_texts"`
}

// PreferredLanguage is a user's preferred translation language.
type PreferredLanguage struct {
	PreferredLanguageCode *string `json:"preferred_language_code"`
}
