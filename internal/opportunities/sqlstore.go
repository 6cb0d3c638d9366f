package opportunities

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/D-z-V/oppia/pkg/pagination"
)

// SQLStore implements Store over Postgres using keyset pagination on the
// (seq, id) total order. seq is assigned by the upstream publishing
// pipeline in insertion order; id breaks ties.
type SQLStore struct {
	db     *sql.DB
	keyset pagination.KeysetBuilder
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:     db,
		keyset: pagination.KeysetBuilder{SeqColumn: "o.seq", IDColumn: "o.id"},
	}
}

func (s *SQLStore) FetchBatch(ctx context.Context, category Category, f Filters, cursor string, batchSize int) ([]Summary, string, bool, error) {
	cur, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, "", false, fmt.Errorf("decoding cursor: %w", err)
	}

	switch category {
	case CategorySkill:
		return s.fetchSkillBatch(ctx, f, cur, batchSize)
	case CategoryTranslation:
		return s.fetchTranslationBatch(ctx, f, cur, batchSize, false)
	case CategoryReviewable:
		return s.fetchTranslationBatch(ctx, f, cur, batchSize, true)
	default:
		return nil, "", false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

// fetchSkillBatch lists skills needing more questions, restricted to topics
// attached to a classroom.
func (s *SQLStore) fetchSkillBatch(ctx context.Context, f Filters, cur *pagination.Cursor, batchSize int) ([]Summary, string, bool, error) {
	query := `
		SELECT o.id, o.seq, o.skill_description, o.question_count, o.topic_id, o.topic_name
		FROM skill_opportunities o
		JOIN topics t ON t.id = o.topic_id
		WHERE t.classroom_name IS NOT NULL`
	args := []interface{}{}

	if f.TopicID != "" {
		args = append(args, f.TopicID)
		query += fmt.Sprintf(" AND o.topic_id = $%d", len(args))
	}
	if cond, condArgs := s.keyset.Condition(cur, len(args)+1); cond != "" {
		query += " AND " + cond
		args = append(args, condArgs...)
	}
	args = append(args, batchSize+1)
	query += fmt.Sprintf(" %s LIMIT $%d", s.keyset.OrderBy(), len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", false, fmt.Errorf("querying skill opportunities: %w", err)
	}
	defer rows.Close()

	var batch []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Seq, &sm.SkillDescription, &sm.QuestionCount, &sm.TopicID, &sm.TopicName); err != nil {
			return nil, "", false, fmt.Errorf("scanning skill opportunity: %w", err)
		}
		batch = append(batch, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, "", false, err
	}
	return finishBatch(batch, batchSize)
}

// fetchTranslationBatch lists explorations with untranslated content in the
// target language. With reviewable set it instead lists explorations that
// have in-review translation suggestions in that language.
func (s *SQLStore) fetchTranslationBatch(ctx context.Context, f Filters, cur *pagination.Cursor, batchSize int, reviewable bool) ([]Summary, string, bool, error) {
	args := []interface{}{f.LanguageCode}
	query := `
		SELECT o.id, o.seq, o.topic_id, o.topic_name, o.story_title, o.chapter_title,
		       o.content_count, COALESCE(tc.translated_count, 0), COALESCE(tc.in_review_count, 0)
		FROM exploration_opportunities o
		LEFT JOIN translation_counts tc ON tc.opportunity_id = o.id AND tc.language_code = $1`
	if reviewable {
		query += `
		WHERE EXISTS (
			SELECT 1 FROM translation_suggestions sg
			WHERE sg.target_id = o.id AND sg.status = 'review'
			  AND ($1 = '' OR sg.language_code = $1)
		)`
	} else {
		query += `
		WHERE COALESCE(tc.translated_count, 0) < o.content_count`
	}

	if f.TopicID != "" {
		args = append(args, f.TopicID)
		query += fmt.Sprintf(" AND o.topic_id = $%d", len(args))
	}
	if cond, condArgs := s.keyset.Condition(cur, len(args)+1); cond != "" {
		query += " AND " + cond
		args = append(args, condArgs...)
	}
	args = append(args, batchSize+1)
	query += fmt.Sprintf(" %s LIMIT $%d", s.keyset.OrderBy(), len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", false, fmt.Errorf("querying exploration opportunities: %w", err)
	}
	defer rows.Close()

	var batch []Summary
	for rows.Next() {
		var sm Summary
		var translated, inReview int
		if err := rows.Scan(&sm.ID, &sm.Seq, &sm.TopicID, &sm.TopicName, &sm.StoryTitle,
			&sm.ChapterTitle, &sm.ContentCount, &translated, &inReview); err != nil {
			return nil, "", false, fmt.Errorf("scanning exploration opportunity: %w", err)
		}
		sm.LanguageCode = f.LanguageCode
		sm.TranslationCounts = map[string]int{f.LanguageCode: translated}
		sm.TranslationInReviewCounts = map[string]int{f.LanguageCode: inReview}
		batch = append(batch, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, "", false, err
	}
	return finishBatch(batch, batchSize)
}

// finishBatch trims the probe row used for exhaustion detection and encodes
// the resume cursor past the last returned candidate.
func finishBatch(batch []Summary, batchSize int) ([]Summary, string, bool, error) {
	exhausted := len(batch) <= batchSize
	if !exhausted {
		batch = batch[:batchSize]
	}
	next := ""
	if len(batch) > 0 {
		last := batch[len(batch)-1]
		next = pagination.EncodeCursor(last.Seq, last.ID)
	}
	return batch, next, exhausted, nil
}

func (s *SQLStore) ResolveEntity(ctx context.Context, category Category, id string) (bool, error) {
	kind := "exploration"
	if category == CategorySkill {
		kind = "skill"
	}
	var live bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM entities WHERE id = $1 AND kind = $2 AND NOT deleted)`,
		id, kind).Scan(&live)
	if err != nil {
		return false, fmt.Errorf("resolving entity %q: %w", id, err)
	}
	return live, nil
}

func (s *SQLStore) GetPinned(ctx context.Context, category Category, f Filters) (*Summary, error) {
	if f.UserID == "" || f.LanguageCode == "" {
		return nil, nil
	}

	args := []interface{}{f.UserID, f.LanguageCode}
	query := `
		SELECT o.id, o.seq, o.topic_id, o.topic_name, o.story_title, o.chapter_title, o.content_count
		FROM pinned_opportunities p
		JOIN exploration_opportunities o ON o.id = p.opportunity_id
		WHERE p.user_id = $1 AND p.language_code = $2`
	if f.TopicID != "" {
		args = append(args, f.TopicID)
		query += fmt.Sprintf(" AND p.topic_id = $%d", len(args))
	}
	query += " LIMIT 1"

	var sm Summary
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&sm.ID, &sm.Seq, &sm.TopicID,
		&sm.TopicName, &sm.StoryTitle, &sm.ChapterTitle, &sm.ContentCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying pinned opportunity: %w", err)
	}
	sm.LanguageCode = f.LanguageCode
	return &sm, nil
}

func (s *SQLStore) ResolveTopic(ctx context.Context, name string) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM topics WHERE name = $1 AND published`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolving topic %q: %w", name, err)
	}
	return id, true, nil
}

// Pin records a pinned opportunity for the (user, language, topic) scope,
// replacing any existing pin in that scope.
func (s *SQLStore) Pin(ctx context.Context, userID, topicID, languageCode, opportunityID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pinned_opportunities (user_id, topic_id, language_code, opportunity_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, topic_id, language_code)
		DO UPDATE SET opportunity_id = EXCLUDED.opportunity_id`,
		userID, topicID, languageCode, opportunityID)
	if err != nil {
		return fmt.Errorf("pinning opportunity: %w", err)
	}
	return nil
}

// Unpin removes the pin for the (user, language, topic) scope, if any.
func (s *SQLStore) Unpin(ctx context.Context, userID, topicID, languageCode string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM pinned_opportunities
		WHERE user_id = $1 AND topic_id = $2 AND language_code = $3`,
		userID, topicID, languageCode)
	if err != nil {
		return fmt.Errorf("unpinning opportunity: %w", err)
	}
	return nil
}
