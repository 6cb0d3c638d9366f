package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/D-z-V/oppia/internal/languages"
	"github.com/D-z-V/oppia/pkg/models"
)

// GetTranslatableTexts returns the exploration content still needing
// translation in the target language, keyed by state name. Content already
// translated or with an in-review suggestion is excluded, as are
// list-format contents.
func GetTranslatableTexts(c *gin.Context) {
	expID := c.Query("exp_id")
	languageCode := c.Query("language_code")
	if !languages.IsSupported(languageCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid language_code: " + languageCode})
		return
	}

	var curated bool
	err := db.QueryRowContext(c.Request.Context(),
		`SELECT EXISTS(SELECT 1 FROM exploration_opportunities WHERE id = $1)`, expID).Scan(&curated)
	if err != nil {
		internalError(c, err, "Failed to look up exploration")
		return
	}
	if !curated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exploration " + expID + " is not part of a curated lesson."})
		return
	}

	rows, err := db.QueryContext(c.Request.Context(), `
		SELECT ec.state_name, ec.content_id, ec.content_html, ec.content_type,
		       ec.data_format, COALESCE(ec.interaction_id, ''), COALESCE(ec.rule_type, '')
		FROM exploration_contents ec
		WHERE ec.exp_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM translation_suggestions sg
			WHERE sg.target_id = ec.exp_id AND sg.content_id = ec.content_id
			  AND sg.language_code = $2 AND sg.status IN ('review', 'accepted')
		  )
		ORDER BY ec.state_name, ec.content_id`, expID, languageCode)
	if err != nil {
		internalError(c, err, "Failed to fetch translatable contents")
		return
	}
	defer rows.Close()

	mapping := map[string]map[string]models.TranslatableItem{}
	for rows.Next() {
		var stateName, contentID string
		var item models.TranslatableItem
		if err := rows.Scan(&stateName, &contentID, &item.Content, &item.ContentType,
			&item.DataFormat, &item.InteractionID, &item.RuleType); err != nil {
			internalError(c, err, "Failed to scan translatable content")
			return
		}
		// List-format contents are not individually translatable.
		if strings.HasPrefix(item.DataFormat, "set_of_") {
			continue
		}
		if mapping[stateName] == nil {
			mapping[stateName] = map[string]models.TranslatableItem{}
		}
		mapping[stateName][contentID] = item
	}
	if err := rows.Err(); err != nil {
		internalError(c, err, "Failed to read translatable contents")
		return
	}

	var version int
	if err := db.QueryRowContext(c.Request.Context(),
		`SELECT version FROM entities WHERE id = $1 AND kind = 'exploration'`, expID).Scan(&version); err != nil && err != sql.ErrNoRows {
		internalError(c, err, "Failed to look up exploration version")
		return
	}

	c.JSON(http.StatusOK, models.TranslatableTexts{
		StateNamesToContentIDMapping: mapping,
		Version:                      version,
	})
}

// GetMachineTranslatedStateTexts machine translates the requested content
// ids of one exploration state. Ids that do not exist or cannot be
// translated map to null.
func GetMachineTranslatedStateTexts(c *gin.Context) {
	expID := c.Query("exp_id")
	stateName := c.Query("state_name")
	rawContentIDs := c.Query("content_ids")
	targetLanguage := c.Query("target_language_code")

	var contentIDs []string
	if err := json.Unmarshal([]byte(rawContentIDs), &contentIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Improperly formatted content_ids: " + rawContentIDs})
		return
	}
	if !languages.IsSupported(targetLanguage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target_language_code: " + targetLanguage})
		return
	}

	rows, err := db.QueryContext(c.Request.Context(), `
		SELECT content_id, content_html FROM exploration_contents
		WHERE exp_id = $1 AND state_name = $2`, expID, stateName)
	if err != nil {
		internalError(c, err, "Failed to fetch state contents")
		return
	}
	defer rows.Close()

	contents := map[string]string{}
	for rows.Next() {
		var id, html string
		if err := rows.Scan(&id, &html); err != nil {
			internalError(c, err, "Failed to scan state content")
			return
		}
		contents[id] = html
	}
	if err := rows.Err(); err != nil {
		internalError(c, err, "Failed to read state contents")
		return
	}
	if len(contents) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found."})
		return
	}

	translated := make(map[string]*string, len(contentIDs))
	for _, id := range contentIDs {
		html, ok := contents[id]
		if !ok {
			translated[id] = nil
			continue
		}
		out, err := mtCache.Get(c.Request.Context(), html, targetLanguage)
		if err != nil {
			internalError(c, err, "Machine translation failed")
			return
		}
		translated[id] = out
	}

	c.JSON(http.StatusOK, models.MachineTranslationResponse{TranslatedTexts: translated})
}

// GetPreferredTranslationLanguage returns the caller's preferred
// translation language, null when unset.
func GetPreferredTranslationLanguage(c *gin.Context) {
	userID := c.GetString("user_id")

	var code string
	err := db.QueryRowContext(c.Request.Context(),
		`SELECT language_code FROM preferred_translation_languages WHERE user_id = $1`, userID).Scan(&code)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, models.PreferredLanguage{})
		return
	}
	if err != nil {
		internalError(c, err, "Failed to fetch preferred language")
		return
	}
	c.JSON(http.StatusOK, models.PreferredLanguage{PreferredLanguageCode: &code})
}

// SetPreferredTranslationLanguage stores the caller's preferred translation
// language.
func SetPreferredTranslationLanguage(c *gin.Context) {
	var req struct {
		LanguageCode string `json:"language_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !languages.IsSupported(req.LanguageCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid language_code: " + req.LanguageCode})
		return
	}

	userID := c.GetString("user_id")
	_, err := db.ExecContext(c.Request.Context(), `
		INSERT INTO preferred_translation_languages (user_id, language_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET language_code = EXCLUDED.language_code`,
		userID, req.LanguageCode)
	if err != nil {
		internalError(c, err, "Failed to store preferred language")
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
