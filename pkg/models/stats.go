package models

// TranslationSubmitterStats summarizes a contributor's translation
// submissions for one (language, topic) pair.
type TranslationSubmitterStats struct {
	LanguageCode                             string `json:"language_code"`
	TopicName                                string `json:"topic_name"`
	SubmittedTranslationsCount               int    `json:"submitted_translations_count"`
	SubmittedTranslationWordCount            int    `json:"submitted_translation_word_count"`
	AcceptedTranslationsCount                int    `json:"accepted_translations_count"`
	AcceptedTranslationsWithoutReviewerEdits int    `json:"accepted_translations_without_reviewer_edits_count"`
	AcceptedTranslationWordCount             int    `json:"accepted_translation_word_count"`
	RejectedTranslationsCount                int    `json:"rejected_translations_count"`
	RejectedTranslationWordCount             int    `json:"rejected_translation_word_count"`
	FirstContributionDate                    string `json:"first_contribution_date"`
	LastContributionDate                     string `json:"last_contribution_date"`
}

// TranslationReviewerStats summarizes a reviewer's translation reviews for
// one (language, topic) pair.
type TranslationReviewerStats struct {
	LanguageCode                          string `json:"language_code"`
	TopicName                             string `json:"topic_name"`
	ReviewedTranslationsCount             int    `json:"reviewed_translations_count"`
	ReviewedTranslationWordCount          int    `json:"reviewed_translation_word_count"`
	AcceptedTranslationsCount             int    `json:"accepted_translations_count"`
	AcceptedTranslationsWithReviewerEdits int    `json:"accepted_translations_with_reviewer_edits_count"`
	AcceptedTranslationWordCount          int    `json:"accepted_translation_word_count"`
	FirstContributionDate                 string `json:"first_contribution_date"`
	LastContributionDate                  string `json:"last_contribution_date"`
}

// QuestionSubmitterStats summarizes a contributor's question submissions
// for one topic.
type QuestionSubmitterStats struct {
	TopicName                             string `json:"topic_name"`
	SubmittedQuestionsCount               int    `json:"submitted_questions_count"`
	AcceptedQuestionsCount                int    `json:"accepted_questions_count"`
	AcceptedQuestionsWithoutReviewerEdits int    `json:"accepted_questions_without_reviewer_edits_count"`
	FirstContributionDate                 string `json:"first_contribution_date"`
	LastContributionDate                  string `json:"last_contribution_date"`
}

// QuestionReviewerStats summarizes a reviewer's question reviews for one
// topic.
type QuestionReviewerStats struct {
	TopicName                          string `json:"topic_name"`
	ReviewedQuestionsCount             int    `json:"reviewed_questions_count"`
	AcceptedQuestionsCount             int    `json:"accepted_questions_count"`
	AcceptedQuestionsWithReviewerEdits int    `json:"accepted_questions_with_reviewer_edits_count"`
	FirstContributionDate              string `json:"first_contribution_date"`
	LastContributionDate               string `json:"last_contribution_date"`
}

// AllContributorStats bundles every stats category for one user. Empty
// sections are omitted from the JSON body.
type AllContributorStats struct {
	TranslationContributionStats []TranslationSubmitterStats `json:"translation_contribution_stats,omitempty"`
	TranslationReviewStats       []TranslationReviewerStats  `json:"translation_review_stats,omitempty"`
	QuestionContributionStats    []QuestionSubmitterStats    `json:"question_contribution_stats,omitempty"`
	QuestionReviewStats          []QuestionReviewerStats     `json:"question_review_stats,omitempty"`
}

// ContributorCertificate is the downloadable certificate payload for a
// contributor's accepted work in a date range.
type ContributorCertificate struct {
	FromDate          string `json:"from_date"`
	ToDate            string `json:"to_date"`
	ContributionHours string `json:"contribution_hours"`
	TeamLead          string `json:"team_lead"`
	Language          string `json:"language,omitempty"`
}
