package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestContributionRightsForGuest(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/usercontributionrightsdatahandler", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		CanReviewTranslation []string `json:"can_review_translation_for_language_codes"`
		CanReviewVoiceover   []string `json:"can_review_voiceover_for_language_codes"`
		CanReviewQuestions   bool     `json:"can_review_questions"`
		CanSuggestQuestions  bool     `json:"can_suggest_questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.CanReviewTranslation == nil || len(body.CanReviewTranslation) != 0 {
		t.Fatalf("guests should get empty language list, got %v", body.CanReviewTranslation)
	}
	if body.CanReviewQuestions || body.CanSuggestQuestions {
		t.Fatal("guests should have no question rights")
	}
}

func TestContributionRightsForReviewer(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("FROM user_contribution_rights").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"review_translation_languages", "review_voiceover_languages", "can_review_questions", "can_suggest_questions"}).
			AddRow(pq.StringArray{"hi", "sw"}, pq.StringArray{}, false, true))

	req := httptest.NewRequest(http.MethodGet, "/usercontributionrightsdatahandler", nil)
	loginAs(t, req, "u1", "alice")
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		CanReviewTranslation []string `json:"can_review_translation_for_language_codes"`
		CanSuggestQuestions  bool     `json:"can_suggest_questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.CanReviewTranslation) != 2 || body.CanReviewTranslation[0] != "hi" {
		t.Fatalf("unexpected rights: %+v", body)
	}
	if !body.CanSuggestQuestions {
		t.Fatal("expected can_suggest_questions=true")
	}
}

func TestFeaturedTranslationLanguages(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/retrievefeaturedtranslationlanguages", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		FeaturedTranslationLanguages []struct {
			LanguageCode string `json:"language_code"`
			Explanation  string `json:"explanation"`
		} `json:"featured_translation_languages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.FeaturedTranslationLanguages) != 9 {
		t.Fatalf("expected 9 featured languages, got %d", len(body.FeaturedTranslationLanguages))
	}
	first := body.FeaturedTranslationLanguages[0]
	if first.LanguageCode != "pt" || first.Explanation != "For learners in Brazil, Angola and Mozambique." {
		t.Fatalf("unexpected first featured language: %+v", first)
	}
}

func TestTranslatableTopicNames(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("SELECT name FROM topics").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Fractions").AddRow("Place Values"))

	req := httptest.NewRequest(http.MethodGet, "/gettranslatabletopicnames", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		TopicNames []string `json:"topic_names"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.TopicNames) != 2 || body.TopicNames[0] != "Fractions" {
		t.Fatalf("unexpected topic names: %v", body.TopicNames)
	}
}

func TestTranslatableTopicNamesPerClassroom(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"classroom_name", "name"}).
			AddRow("math", "Fractions").
			AddRow("", "Orphan Topic").
			AddRow("math", "Place Values"))

	req := httptest.NewRequest(http.MethodGet, "/gettranslatabletopicnamesperclassroom", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Groups []struct {
			Classroom  string   `json:"classroom"`
			TopicNames []string `json:"topic_names"`
		} `json:"topic_names_per_classroom"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Groups) != 2 {
		t.Fatalf("expected 2 classroom groups, got %d", len(body.Groups))
	}
	// Unassigned topics group under the empty classroom, sorted first.
	if body.Groups[0].Classroom != "" || body.Groups[0].TopicNames[0] != "Orphan Topic" {
		t.Fatalf("unexpected first group: %+v", body.Groups[0])
	}
	if body.Groups[1].Classroom != "math" || len(body.Groups[1].TopicNames) != 2 {
		t.Fatalf("unexpected math group: %+v", body.Groups[1])
	}
}
