package handlers

import (
	"database/sql"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/D-z-V/oppia/internal/languages"
	"github.com/D-z-V/oppia/pkg/models"
)

// GetUserContributionRights returns the caller's review and suggestion
// rights. Guests get empty defaults.
func GetUserContributionRights(c *gin.Context) {
	rights := models.ContributionRights{
		CanReviewTranslationForLanguageCodes: []string{},
		CanReviewVoiceoverForLanguageCodes:   []string{},
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusOK, rights)
		return
	}

	var translationLangs, voiceoverLangs pq.StringArray
	err := db.QueryRowContext(c.Request.Context(), `
		SELECT review_translation_languages, review_voiceover_languages,
		       can_review_questions, can_suggest_questions
		FROM user_contribution_rights WHERE user_id = $1`, userID).
		Scan(&translationLangs, &voiceoverLangs, &rights.CanReviewQuestions, &rights.CanSuggestQuestions)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, rights)
		return
	}
	if err != nil {
		internalError(c, err, "Failed to fetch contribution rights")
		return
	}

	rights.CanReviewTranslationForLanguageCodes = append(rights.CanReviewTranslationForLanguageCodes, translationLangs...)
	rights.CanReviewVoiceoverForLanguageCodes = append(rights.CanReviewVoiceoverForLanguageCodes, voiceoverLangs...)
	c.JSON(http.StatusOK, rights)
}

// GetFeaturedTranslationLanguages returns the static featured language
// registry.
func GetFeaturedTranslationLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"featured_translation_languages": languages.Featured(),
	})
}

// GetTranslatableTopicNames returns the names of all published topics.
func GetTranslatableTopicNames(c *gin.Context) {
	rows, err := db.QueryContext(c.Request.Context(),
		`SELECT name FROM topics WHERE published ORDER BY name`)
	if err != nil {
		internalError(c, err, "Failed to fetch topic names")
		return
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			internalError(c, err, "Failed to scan topic name")
			return
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		internalError(c, err, "Failed to read topic names")
		return
	}

	c.JSON(http.StatusOK, gin.H{"topic_names": names})
}

// GetTranslatableTopicNamesPerClassroom groups published topic names by
// classroom. Topics without a classroom appear under "".
func GetTranslatableTopicNamesPerClassroom(c *gin.Context) {
	rows, err := db.QueryContext(c.Request.Context(),
		`SELECT COALESCE(classroom_name, ''), name FROM topics WHERE published ORDER BY name`)
	if err != nil {
		internalError(c, err, "Failed to fetch topic names")
		return
	}
	defer rows.Close()

	grouped := map[string][]string{}
	for rows.Next() {
		var classroom, name string
		if err := rows.Scan(&classroom, &name); err != nil {
			internalError(c, err, "Failed to scan topic name")
			return
		}
		grouped[classroom] = append(grouped[classroom], name)
	}
	if err := rows.Err(); err != nil {
		internalError(c, err, "Failed to read topic names")
		return
	}

	classrooms := make([]string, 0, len(grouped))
	for classroom := range grouped {
		classrooms = append(classrooms, classroom)
	}
	sort.Strings(classrooms)

	out := make([]gin.H, 0, len(classrooms))
	for _, classroom := range classrooms {
		out = append(out, gin.H{
			"classroom":   classroom,
			"topic_names": grouped[classroom],
		})
	}
	c.JSON(http.StatusOK, gin.H{"topic_names_per_classroom": out})
}
