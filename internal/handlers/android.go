package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/D-z-V/oppia/pkg/models"
)

var androidActivityTypes = map[string]bool{
	"exploration":              true,
	"exploration_translations": true,
	"story":                    true,
	"skill":                    true,
	"subtopic":                 true,
	"learntopic":               true,
	"classroom":                true,
	"question_skill_link":      true,
	"question":                 true,
}

// GetAndroidActivities serves batch entity lookups for the Android client.
// Missing entities map to a null payload rather than an error.
func GetAndroidActivities(c *gin.Context) {
	activityType := c.Query("activity_type")
	if !androidActivityTypes[activityType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity_type: " + activityType})
		return
	}

	var requests []models.ActivityRequest
	if err := json.Unmarshal([]byte(c.Query("activities_data")), &requests); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Improperly formatted activities_data: " + c.Query("activities_data")})
		return
	}

	seen := map[string]bool{}
	for _, req := range requests {
		key := req.ID + "|" + req.LanguageCode
		if req.Version != nil {
			key += "|" + strconv.Itoa(*req.Version)
		}
		if seen[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Entries in activities_data should be unique"})
			return
		}
		seen[key] = true
	}

	ctx := c.Request.Context()
	var activities []models.ActivityResult
	var err error
	switch activityType {
	case "subtopic":
		activities, err = fetchSubtopicActivities(ctx, requests)
	case "question_skill_link":
		activities, err = fetchQuestionSkillLinks(c, ctx, requests)
	case "classroom":
		activities, err = fetchClassroomActivities(c, ctx, requests)
	case "exploration_translations":
		activities, err = fetchTranslationActivities(c, ctx, requests)
	default:
		activities, err = fetchVersionedActivities(ctx, activityType, requests)
	}
	if err != nil {
		internalError(c, err, "Failed to fetch activities")
		return
	}
	if activities == nil {
		// A handler already wrote a 400 response.
		return
	}

	c.JSON(http.StatusOK, activities)
}

// fetchSubtopicActivities splits each compound topicid-subtopicindex id and
// looks up the subtopic page.
func fetchSubtopicActivities(ctx context.Context, requests []models.ActivityRequest) ([]models.ActivityResult, error) {
	out := make([]models.ActivityResult, 0, len(requests))
	for _, req := range requests {
		result := models.ActivityResult{ID: req.ID, Version: req.Version}

		parts := strings.SplitN(req.ID, "-", 2)
		if len(parts) != 2 {
			out = append(out, result)
			continue
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			out = append(out, result)
			continue
		}

		var raw []byte
		if req.Version != nil {
			err = db.QueryRowContext(ctx, `
				SELECT payload FROM subtopic_pages
				WHERE topic_id = $1 AND subtopic_index = $2 AND version = $3`,
				parts[0], index, *req.Version).Scan(&raw)
		} else {
			err = db.QueryRowContext(ctx, `
				SELECT payload FROM subtopic_pages
				WHERE topic_id = $1 AND subtopic_index = $2
				ORDER BY version DESC LIMIT 1`, parts[0], index).Scan(&raw)
		}
		if err == sql.ErrNoRows {
			out = append(out, result)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("querying subtopic page %q: %w", req.ID, err)
		}

		var payload interface{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("decoding subtopic page %q: %w", req.ID, err)
		}
		result.Payload = payload
		out = append(out, result)
	}
	return out, nil
}

func fetchQuestionSkillLinks(c *gin.Context, ctx context.Context, requests []models.ActivityRequest) ([]models.ActivityResult, error) {
	out := make([]models.ActivityResult, 0, len(requests))
	for _, req := range requests {
		if req.Version != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Version cannot be specified for question_skill_link"})
			return nil, nil
		}
		rows, err := db.QueryContext(ctx, `
			SELECT question_id FROM question_skill_links
			WHERE skill_id = $1 ORDER BY question_id LIMIT 100`, req.ID)
		if err != nil {
			return nil, fmt.Errorf("querying question skill links: %w", err)
		}
		questionIDs := []string{}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, err
			}
			questionIDs = append(questionIDs, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		out = append(out, models.ActivityResult{
			ID:      req.ID,
			Payload: gin.H{"question_ids": questionIDs},
		})
	}
	return out, nil
}

func fetchClassroomActivities(c *gin.Context, ctx context.Context, requests []models.ActivityRequest) ([]models.ActivityResult, error) {
	out := make([]models.ActivityResult, 0, len(requests))
	for _, req := range requests {
		if req.Version != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Version cannot be specified for classroom"})
			return nil, nil
		}
		payload, err := fetchSnapshotPayload(ctx, "classroom", req.ID, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ActivityResult{ID: req.ID, Payload: payload})
	}
	return out, nil
}

// fetchTranslationActivities requires both version and language code per
// entry.
func fetchTranslationActivities(c *gin.Context, ctx context.Context, requests []models.ActivityRequest) ([]models.ActivityResult, error) {
	out := make([]models.ActivityResult, 0, len(requests))
	for _, req := range requests {
		if req.Version == nil || req.LanguageCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Version and language_code must be specified for exploration_translations"})
			return nil, nil
		}

		var raw []byte
		err := db.QueryRowContext(ctx, `
			SELECT translations FROM entity_translations
			WHERE entity_id = $1 AND entity_version = $2 AND language_code = $3`,
			req.ID, *req.Version, req.LanguageCode).Scan(&raw)
		result := models.ActivityResult{ID: req.ID, Version: req.Version, LanguageCode: req.LanguageCode}
		if err == nil {
			var payload interface{}
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, fmt.Errorf("decoding translations for %q: %w", req.ID, err)
			}
			result.Payload = payload
		} else if err != sql.ErrNoRows {
			return nil, fmt.Errorf("querying entity translations: %w", err)
		}
		out = append(out, result)
	}
	return out, nil
}

func fetchVersionedActivities(ctx context.Context, activityType string, requests []models.ActivityRequest) ([]models.ActivityResult, error) {
	kind := activityType
	if kind == "learntopic" {
		kind = "topic"
	}
	out := make([]models.ActivityResult, 0, len(requests))
	for _, req := range requests {
		payload, err := fetchSnapshotPayload(ctx, kind, req.ID, req.Version)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ActivityResult{ID: req.ID, Version: req.Version, Payload: payload})
	}
	return out, nil
}

// fetchSnapshotPayload reads one versioned entity snapshot, or the latest
// version when none is requested. Returns nil for missing entities.
func fetchSnapshotPayload(ctx context.Context, kind, id string, version *int) (interface{}, error) {
	var raw []byte
	var err error
	if version != nil {
		err = db.QueryRowContext(ctx, `
			SELECT payload FROM entity_snapshots
			WHERE kind = $1 AND entity_id = $2 AND version = $3`, kind, id, *version).Scan(&raw)
	} else {
		err = db.QueryRowContext(ctx, `
			SELECT payload FROM entity_snapshots
			WHERE kind = $1 AND entity_id = $2
			ORDER BY version DESC LIMIT 1`, kind, id).Scan(&raw)
	}
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s snapshot %q: %w", kind, id, err)
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s snapshot %q: %w", kind, id, err)
	}
	return payload, nil
}
