package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/D-z-V/oppia/internal/languages"
	"github.com/D-z-V/oppia/pkg/config"
	"github.com/D-z-V/oppia/pkg/models"
)

const statsDateLayout = "Jan 2006"

// Accepted translations count toward contribution hours at a fixed word
// rate; accepted questions at a fixed per-question rate.
const (
	wordsPerContributionHour    = 300.0
	hoursPerAcceptedQuestion    = 0.2
	certificateDateLayout       = "02 Jan 2006"
	certificateDateParamLayout  = "2006-01-02"
	suggestionTypeTranslateText = "translate_content"
	suggestionTypeAddQuestion   = "add_question"
)

// GetContributorStatsSummaries serves one stats category for a user. Users
// may only fetch their own stats.
func GetContributorStatsSummaries(c *gin.Context) {
	contributionType := c.Param("contribution_type")
	contributionSubtype := c.Param("contribution_subtype")
	username := c.Param("username")

	if contributionType != "translation" && contributionType != "question" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid contribution type %s.", contributionType)})
		return
	}
	if contributionSubtype != "submission" && contributionSubtype != "review" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid contribution subtype %s.", contributionSubtype)})
		return
	}
	if !requireOwnStats(c, username) {
		return
	}
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	switch contributionType + "/" + contributionSubtype {
	case "translation/submission":
		stats, err := fetchTranslationSubmitterStats(ctx, userID)
		if err != nil {
			internalError(c, err, "Failed to fetch translation contribution stats")
			return
		}
		c.JSON(http.StatusOK, gin.H{"translation_contribution_stats": stats})
	case "translation/review":
		stats, err := fetchTranslationReviewerStats(ctx, userID)
		if err != nil {
			internalError(c, err, "Failed to fetch translation review stats")
			return
		}
		c.JSON(http.StatusOK, gin.H{"translation_review_stats": stats})
	case "question/submission":
		stats, err := fetchQuestionSubmitterStats(ctx, userID)
		if err != nil {
			internalError(c, err, "Failed to fetch question contribution stats")
			return
		}
		c.JSON(http.StatusOK, gin.H{"question_contribution_stats": stats})
	case "question/review":
		stats, err := fetchQuestionReviewerStats(ctx, userID)
		if err != nil {
			internalError(c, err, "Failed to fetch question review stats")
			return
		}
		c.JSON(http.StatusOK, gin.H{"question_review_stats": stats})
	}
}

// GetAllContributorStatsSummaries serves every stats category for a user in
// one response. Empty categories are omitted, so a new user gets {}.
func GetAllContributorStatsSummaries(c *gin.Context) {
	if !requireOwnStats(c, c.Param("username")) {
		return
	}
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	var all models.AllContributorStats
	var err error
	if all.TranslationContributionStats, err = fetchTranslationSubmitterStats(ctx, userID); err != nil {
		internalError(c, err, "Failed to fetch translation contribution stats")
		return
	}
	if all.TranslationReviewStats, err = fetchTranslationReviewerStats(ctx, userID); err != nil {
		internalError(c, err, "Failed to fetch translation review stats")
		return
	}
	if all.QuestionContributionStats, err = fetchQuestionSubmitterStats(ctx, userID); err != nil {
		internalError(c, err, "Failed to fetch question contribution stats")
		return
	}
	if all.QuestionReviewStats, err = fetchQuestionReviewerStats(ctx, userID); err != nil {
		internalError(c, err, "Failed to fetch question review stats")
		return
	}

	c.JSON(http.StatusOK, all)
}

// GetContributorCertificate computes a contribution certificate over a date
// range from the user's accepted suggestions.
func GetContributorCertificate(c *gin.Context) {
	username := c.Param("username")
	suggestionType := c.Param("suggestion_type")
	if !requireOwnStats(c, username) {
		return
	}
	if suggestionType != suggestionTypeTranslateText && suggestionType != suggestionTypeAddQuestion {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid suggestion type %s.", suggestionType)})
		return
	}

	fromDate, err := time.Parse(certificateDateParamLayout, c.Query("from_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from_date format."})
		return
	}
	toDate, err := time.Parse(certificateDateParamLayout, c.Query("to_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to_date format."})
		return
	}
	if toDate.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "To date should not be a future date."})
		return
	}

	cert := models.ContributorCertificate{
		FromDate: fromDate.Format(certificateDateLayout),
		ToDate:   toDate.Format(certificateDateLayout),
	}
	userID := c.GetString("user_id")

	if suggestionType == suggestionTypeTranslateText {
		languageCode := c.Query("language")
		languageName, ok := languages.Name(languageCode)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid language: " + languageCode})
			return
		}
		cert.Language = languageName
		cert.TeamLead = config.GetEnv("TRANSLATION_TEAM_LEAD", "Translation Team Lead")

		var wordCount int
		err := db.QueryRowContext(c.Request.Context(), `
			SELECT COALESCE(SUM(word_count), 0) FROM translation_suggestions
			WHERE author_id = $1 AND status = 'accepted' AND language_code = $2
			  AND accepted_at >= $3 AND accepted_at < $4`,
			userID, languageCode, fromDate, toDate.AddDate(0, 0, 1)).Scan(&wordCount)
		if err != nil {
			internalError(c, err, "Failed to compute translation certificate")
			return
		}
		cert.ContributionHours = fmt.Sprintf("%.2f", float64(wordCount)/wordsPerContributionHour)
	} else {
		cert.TeamLead = config.GetEnv("QUESTION_TEAM_LEAD", "Question Team Lead")

		var questionCount int
		err := db.QueryRowContext(c.Request.Context(), `
			SELECT COUNT(*) FROM question_suggestions
			WHERE author_id = $1 AND status = 'accepted'
			  AND accepted_at >= $2 AND accepted_at < $3`,
			userID, fromDate, toDate.AddDate(0, 0, 1)).Scan(&questionCount)
		if err != nil {
			internalError(c, err, "Failed to compute question certificate")
			return
		}
		cert.ContributionHours = fmt.Sprintf("%.2f", float64(questionCount)*hoursPerAcceptedQuestion)
	}

	c.JSON(http.StatusOK, gin.H{"certificate_data": cert})
}

// requireOwnStats enforces that the authenticated caller is fetching their
// own stats. Writes the error response and returns false otherwise.
func requireOwnStats(c *gin.Context, username string) bool {
	caller := c.GetString("username")
	if caller != username {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": fmt.Sprintf("The user %s is not allowed to fetch the stats of other users.", caller),
		})
		return false
	}
	return true
}

func fetchTranslationSubmitterStats(ctx context.Context, userID string) ([]models.TranslationSubmitterStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT s.language_code, t.name, s.submitted_translations_count,
		       s.submitted_translation_word_count, s.accepted_translations_count,
		       s.accepted_translations_without_reviewer_edits_count,
		       s.accepted_translation_word_count, s.rejected_translations_count,
		       s.rejected_translation_word_count,
		       s.first_contribution_date, s.last_contribution_date
		FROM translation_submitter_stats s
		JOIN topics t ON t.id = s.topic_id
		WHERE s.user_id = $1
		ORDER BY s.language_code, t.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TranslationSubmitterStats
	for rows.Next() {
		var s models.TranslationSubmitterStats
		var first, last time.Time
		if err := rows.Scan(&s.LanguageCode, &s.TopicName, &s.SubmittedTranslationsCount,
			&s.SubmittedTranslationWordCount, &s.AcceptedTranslationsCount,
			&s.AcceptedTranslationsWithoutReviewerEdits, &s.AcceptedTranslationWordCount,
			&s.RejectedTranslationsCount, &s.RejectedTranslationWordCount, &first, &last); err != nil {
			return nil, err
		}
		s.FirstContributionDate = first.Format(statsDateLayout)
		s.LastContributionDate = last.Format(statsDateLayout)
		out = append(out, s)
	}
	return out, rows.Err()
}

func fetchTranslationReviewerStats(ctx context.Context, userID string) ([]models.TranslationReviewerStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT s.language_code, t.name, s.reviewed_translations_count,
		       s.reviewed_translation_word_count, s.accepted_translations_count,
		       s.accepted_translations_with_reviewer_edits_count,
		       s.accepted_translation_word_count,
		       s.first_contribution_date, s.last_contribution_date
		FROM translation_reviewer_stats s
		JOIN topics t ON t.id = s.topic_id
		WHERE s.user_id = $1
		ORDER BY s.language_code, t.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TranslationReviewerStats
	for rows.Next() {
		var s models.TranslationReviewerStats
		var first, last time.Time
		if err := rows.Scan(&s.LanguageCode, &s.TopicName, &s.ReviewedTranslationsCount,
			&s.ReviewedTranslationWordCount, &s.AcceptedTranslationsCount,
			&s.AcceptedTranslationsWithReviewerEdits, &s.AcceptedTranslationWordCount,
			&first, &last); err != nil {
			return nil, err
		}
		s.FirstContributionDate = first.Format(statsDateLayout)
		s.LastContributionDate = last.Format(statsDateLayout)
		out = append(out, s)
	}
	return out, rows.Err()
}

func fetchQuestionSubmitterStats(ctx context.Context, userID string) ([]models.QuestionSubmitterStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT t.name, s.submitted_questions_count, s.accepted_questions_count,
		       s.accepted_questions_without_reviewer_edits_count,
		       s.first_contribution_date, s.last_contribution_date
		FROM question_submitter_stats s
		JOIN topics t ON t.id = s.topic_id
		WHERE s.user_id = $1
		ORDER BY t.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QuestionSubmitterStats
	for rows.Next() {
		var s models.QuestionSubmitterStats
		var first, last time.Time
		if err := rows.Scan(&s.TopicName, &s.SubmittedQuestionsCount, &s.AcceptedQuestionsCount,
			&s.AcceptedQuestionsWithoutReviewerEdits, &first, &last); err != nil {
			return nil, err
		}
		s.FirstContributionDate = first.Format(statsDateLayout)
		s.LastContributionDate = last.Format(statsDateLayout)
		out = append(out, s)
	}
	return out, rows.Err()
}

func fetchQuestionReviewerStats(ctx context.Context, userID string) ([]models.QuestionReviewerStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT t.name, s.reviewed_questions_count, s.accepted_questions_count,
		       s.accepted_questions_with_reviewer_edits_count,
		       s.first_contribution_date, s.last_contribution_date
		FROM question_reviewer_stats s
		JOIN topics t ON t.id = s.topic_id
		WHERE s.user_id = $1
		ORDER BY t.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QuestionReviewerStats
	for rows.Next() {
		var s models.QuestionReviewerStats
		var first, last time.Time
		if err := rows.Scan(&s.TopicName, &s.ReviewedQuestionsCount, &s.AcceptedQuestionsCount,
			&s.AcceptedQuestionsWithReviewerEdits, &first, &last); err != nil {
			return nil, err
		}
		s.FirstContributionDate = first.Format(statsDateLayout)
		s.LastContributionDate = last.Format(statsDateLayout)
		out = append(out, s)
	}
	return out, rows.Err()
}
