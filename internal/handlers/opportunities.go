package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/D-z-V/oppia/internal/languages"
	"github.com/D-z-V/oppia/internal/opportunities"
	"github.com/D-z-V/oppia/pkg/models"
	"github.com/D-z-V/oppia/pkg/pagination"
)

var opportunityTypes = map[string]opportunities.Category{
	"skill":       opportunities.CategorySkill,
	"translation": opportunities.CategoryTranslation,
}

// GetOpportunities serves paginated skill and translation opportunities.
func GetOpportunities(c *gin.Context) {
	category, ok := opportunityTypes[c.Param("opportunity_type")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found."})
		return
	}

	filters := opportunities.Filters{
		LanguageCode: c.Query("language_code"),
		TopicName:    c.Query("topic_name"),
		UserID:       c.GetString("user_id"),
	}
	pageSize := parsePageSize(c)

	page, err := agg.FetchPage(c.Request.Context(), category, filters, c.Query("cursor"), pageSize)
	if err != nil {
		respondAggregatorError(c, err)
		return
	}
	recordPage(string(category), page)

	c.JSON(http.StatusOK, models.OpportunityPage{
		Opportunities: renderSummaries(category, page.Summaries),
		NextCursor:    page.NextCursor,
		More:          page.More,
	})
}

// GetReviewableOpportunities serves translation suggestions awaiting review
// by the authenticated caller. Guests see an empty list.
func GetReviewableOpportunities(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusOK, models.OpportunityPage{
			Opportunities: []interface{}{},
			More:          false,
		})
		return
	}

	filters := opportunities.Filters{
		LanguageCode: c.Query("language_code"),
		TopicName:    c.Query("topic_name"),
		UserID:       userID,
	}
	page, err := agg.FetchPage(c.Request.Context(), opportunities.CategoryReviewable, filters, c.Query("cursor"), parsePageSize(c))
	if err != nil {
		respondAggregatorError(c, err)
		return
	}
	recordPage(string(opportunities.CategoryReviewable), page)

	c.JSON(http.StatusOK, models.OpportunityPage{
		Opportunities: renderSummaries(opportunities.CategoryReviewable, page.Summaries),
		NextCursor:    page.NextCursor,
		More:          page.More,
	})
}

// UpdatePinnedOpportunity pins or unpins an opportunity for the caller's
// (language, topic) scope. An empty opportunity_id unpins.
func UpdatePinnedOpportunity(c *gin.Context) {
	var req models.PinnedOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !languages.IsSupported(req.LanguageCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid language_code: " + req.LanguageCode})
		return
	}
	if req.TopicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing topic_id"})
		return
	}

	userID := c.GetString("user_id")
	var err error
	if req.OpportunityID == "" {
		err = store.Unpin(c.Request.Context(), userID, req.TopicID, req.LanguageCode)
	} else {
		err = store.Pin(c.Request.Context(), userID, req.TopicID, req.LanguageCode, req.OpportunityID)
	}
	if err != nil {
		internalError(c, err, "Failed to update pinned opportunity")
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func parsePageSize(c *gin.Context) int {
	raw := c.Query("page_size")
	if raw == "" {
		return pagination.DefaultPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return pagination.DefaultPageSize
	}
	return pagination.ClampLimit(n)
}

func respondAggregatorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, opportunities.ErrUnsupportedLanguage), errors.Is(err, opportunities.ErrUnknownTopic):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, opportunities.ErrUnknownCategory):
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found."})
	default:
		internalError(c, err, "Failed to fetch opportunities")
	}
}

func renderSummaries(category opportunities.Category, summaries []opportunities.Summary) []interface{} {
	out := make([]interface{}, 0, len(summaries))
	for _, s := range summaries {
		if category == opportunities.CategorySkill {
			out = append(out, models.SkillOpportunity{
				ID:               s.ID,
				SkillDescription: s.SkillDescription,
				QuestionCount:    s.QuestionCount,
				TopicName:        s.TopicName,
			})
			continue
		}
		counts := s.TranslationCounts
		if counts == nil {
			counts = map[string]int{}
		}
		inReview := s.TranslationInReviewCounts
		if inReview == nil {
			inReview = map[string]int{}
		}
		out = append(out, models.TranslationOpportunity{
			ID:                        s.ID,
			TopicName:                 s.TopicName,
			StoryTitle:                s.StoryTitle,
			ChapterTitle:              s.ChapterTitle,
			ContentCount:              s.ContentCount,
			TranslationCounts:         counts,
			TranslationInReviewCounts: inReview,
			IsPinned:                  s.IsPinned,
		})
	}
	return out
}
