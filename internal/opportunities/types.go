// Package opportunities assembles paginated listings of contributable work
// items (skills needing questions, explorations needing translation,
// suggestions awaiting review) over a backing store, skipping entries whose
// underlying entity has since been deleted or corrupted.
package opportunities

import (
	"errors"
	"fmt"
)

// Category selects one opportunity listing.
type Category string

const (
	CategorySkill       Category = "skill"
	CategoryTranslation Category = "translation"
	CategoryReviewable  Category = "reviewable_translation"
)

// Summary is one denormalized opportunity record. Seq is the backing
// store's natural ordering key; ID breaks ties.
type Summary struct {
	ID           string
	Seq          int64
	TopicID      string
	TopicName    string
	LanguageCode string

	SkillDescription string
	QuestionCount    int

	StoryTitle                string
	ChapterTitle              string
	ContentCount              int
	TranslationCounts         map[string]int
	TranslationInReviewCounts map[string]int

	IsPinned bool
}

// Filters narrows a listing. Empty fields match everything. UserID scopes
// pinned-opportunity lookups.
type Filters struct {
	LanguageCode string
	TopicName    string
	UserID       string

	// TopicID is resolved from TopicName during filter validation; callers
	// leave it empty.
	TopicID string
}

// Page is one response page. NextCursor resumes iteration where this page
// left off. FetchRounds and Skipped describe how the page was assembled,
// for metrics.
type Page struct {
	Summaries  []Summary
	More       bool
	NextCursor string

	FetchRounds int
	Skipped     int
}

var (
	ErrUnknownCategory     = errors.New("unknown opportunity category")
	ErrUnsupportedLanguage = errors.New("unsupported language code")
	ErrUnknownTopic        = errors.New("no topic matches the given name")

	// ErrCursorStalled reports a backing store that returned no progress
	// without signalling exhaustion. Surfaced instead of looping.
	ErrCursorStalled = errors.New("backing store cursor did not advance")
)

// categorySpec binds a category tag to its listing rules. Adding a category
// means adding one constant above and one entry here.
type categorySpec struct {
	requiresLanguage bool
	match            func(Summary, Filters) bool
}

var registry = map[Category]categorySpec{
	CategorySkill: {
		requiresLanguage: false,
		match: func(s Summary, f Filters) bool {
			return f.TopicName == "" || s.TopicName == f.TopicName
		},
	},
	CategoryTranslation: {
		requiresLanguage: true,
		match: func(s Summary, f Filters) bool {
			return f.TopicName == "" || s.TopicName == f.TopicName
		},
	},
	CategoryReviewable: {
		requiresLanguage: false,
		match: func(s Summary, f Filters) bool {
			if f.TopicName != "" && s.TopicName != f.TopicName {
				return false
			}
			return f.LanguageCode == "" || s.LanguageCode == "" || s.LanguageCode == f.LanguageCode
		},
	},
}

// ParseCategory maps a request path segment to a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := registry[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}
