package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestGetOpportunitiesUnknownType(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/opportunitiessummaryhandler/voiceover", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetTranslationOpportunitiesRequiresLanguage(t *testing.T) {
	router, _ := newTestEnv(t)

	for _, url := range []string{
		"/opportunitiessummaryhandler/translation",
		"/opportunitiessummaryhandler/translation?language_code=invalid_lang_code",
	} {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		w := doRequest(router, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", url, w.Code)
		}
	}
}

func TestGetSkillOpportunities(t *testing.T) {
	router, mock := newTestEnv(t)

	rows := sqlmock.NewRows([]string{"id", "seq", "skill_description", "question_count", "topic_id", "topic_name"}).
		AddRow("skill_0", 1, "Adding fractions", 5, "t1", "Fractions").
		AddRow("skill_1", 2, "Dividing fractions", 2, "t1", "Fractions")
	mock.ExpectQuery("SELECT o.id, o.seq, o.skill_description").WillReturnRows(rows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("skill_0", "skill").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("skill_1", "skill").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	req := httptest.NewRequest(http.MethodGet, "/opportunitiessummaryhandler/skill", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Opportunities []struct {
			ID               string `json:"id"`
			SkillDescription string `json:"skill_description"`
			QuestionCount    int    `json:"question_count"`
			TopicName        string `json:"topic_name"`
		} `json:"opportunities"`
		NextCursor string `json:"next_cursor"`
		More       bool   `json:"more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Opportunities) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(body.Opportunities))
	}
	if body.Opportunities[0].ID != "skill_0" || body.Opportunities[0].SkillDescription != "Adding fractions" {
		t.Fatalf("unexpected first opportunity: %+v", body.Opportunities[0])
	}
	if body.More {
		t.Fatal("expected more=false on exhausted dataset")
	}
	if body.NextCursor == "" {
		t.Fatal("expected a resume cursor")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSkillOpportunitiesSkipsDeletedEntities(t *testing.T) {
	router, mock := newTestEnv(t)

	rows := sqlmock.NewRows([]string{"id", "seq", "skill_description", "question_count", "topic_id", "topic_name"}).
		AddRow("skill_0", 1, "Adding fractions", 5, "t1", "Fractions").
		AddRow("skill_1", 2, "Dividing fractions", 2, "t1", "Fractions")
	mock.ExpectQuery("SELECT o.id, o.seq, o.skill_description").WillReturnRows(rows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("skill_0", "skill").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("skill_1", "skill").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	req := httptest.NewRequest(http.MethodGet, "/opportunitiessummaryhandler/skill", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "skill_1") || strings.Contains(w.Body.String(), "skill_0") {
		t.Fatalf("deleted entity should be skipped: %s", w.Body.String())
	}
}

func TestGetOpportunitiesZeroPageSize(t *testing.T) {
	router, mock := newTestEnv(t)

	rows := sqlmock.NewRows([]string{"id", "seq", "skill_description", "question_count", "topic_id", "topic_name"}).
		AddRow("skill_0", 1, "Adding fractions", 5, "t1", "Fractions")
	mock.ExpectQuery("SELECT o.id, o.seq, o.skill_description").WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/opportunitiessummaryhandler/skill?page_size=0", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Opportunities []interface{} `json:"opportunities"`
		NextCursor    string        `json:"next_cursor"`
		More          bool          `json:"more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Opportunities) != 0 {
		t.Fatalf("expected zero entries, got %d", len(body.Opportunities))
	}
	if !body.More {
		t.Fatal("expected more=true while data remains")
	}
	if body.NextCursor != "" {
		t.Fatalf("cursor should be unchanged, got %q", body.NextCursor)
	}
}

func TestGetReviewableOpportunitiesAsGuest(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/getreviewableopportunities", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Opportunities []interface{} `json:"opportunities"`
		More          bool          `json:"more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Opportunities) != 0 || body.More {
		t.Fatalf("guests should get an empty list, got %s", w.Body.String())
	}
}

func TestUpdatePinnedOpportunityRequiresLogin(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPut, "/pinnedopportunitysummaries",
		strings.NewReader(`{"topic_id": "t1", "language_code": "hi", "opportunity_id": "exp_1"}`))
	w := doRequest(router, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "You must be logged in to access this resource.") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestUpdatePinnedOpportunity(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectExec("INSERT INTO pinned_opportunities").
		WithArgs("u1", "t1", "hi", "exp_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM pinned_opportunities").
		WithArgs("u1", "t1", "hi").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPut, "/pinnedopportunitysummaries",
		strings.NewReader(`{"topic_id": "t1", "language_code": "hi", "opportunity_id": "exp_1"}`))
	loginAs(t, req, "u1", "alice")
	if w := doRequest(router, req); w.Code != http.StatusOK {
		t.Fatalf("pin: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/pinnedopportunitysummaries",
		strings.NewReader(`{"topic_id": "t1", "language_code": "hi", "opportunity_id": ""}`))
	loginAs(t, req, "u1", "alice")
	if w := doRequest(router, req); w.Code != http.StatusOK {
		t.Fatalf("unpin: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePinnedOpportunityInvalidLanguage(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPut, "/pinnedopportunitysummaries",
		strings.NewReader(`{"topic_id": "t1", "language_code": "xx", "opportunity_id": "exp_1"}`))
	loginAs(t, req, "u1", "alice")
	w := doRequest(router, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
