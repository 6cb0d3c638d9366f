package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/D-z-V/oppia/internal/translation"
)

func TestGetTranslatableTextsInvalidLanguage(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/gettranslatabletexthandler?exp_id=exp_1&language_code=xx", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetTranslatableTextsUncuratedExploration(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("exp_1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	req := httptest.NewRequest(http.MethodGet, "/gettranslatabletexthandler?exp_id=exp_1&language_code=hi", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetTranslatableTexts(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("exp_1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	contentRows := sqlmock.NewRows([]string{"state_name", "content_id", "content_html", "content_type", "data_format", "interaction_id", "rule_type"}).
		AddRow("Introduction", "content", "<p>Hello</p>", "content", "html", "", "").
		AddRow("Introduction", "rule_input_3", "choices", "rule", "set_of_normalized_string", "TextInput", "Equals").
		AddRow("End", "content", "<p>Bye</p>", "content", "html", "", "")
	mock.ExpectQuery("FROM exploration_contents").WithArgs("exp_1", "hi").WillReturnRows(contentRows)
	mock.ExpectQuery("SELECT version FROM entities").WithArgs("exp_1").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))

	req := httptest.NewRequest(http.MethodGet, "/gettranslatabletexthandler?exp_id=exp_1&language_code=hi", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Mapping map[string]map[string]struct {
			Content    string `json:"content"`
			DataFormat string `json:"data_format"`
		} `json:"state_names_to_content_id_mapping"`
		Version int `json:"version"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Version != 3 {
		t.Fatalf("expected version 3, got %d", body.Version)
	}
	if _, ok := body.Mapping["Introduction"]["content"]; !ok {
		t.Fatalf("missing translatable content: %s", w.Body.String())
	}
	// List-format contents are skipped.
	if _, ok := body.Mapping["Introduction"]["rule_input_3"]; ok {
		t.Fatalf("set_of_ content should be skipped: %s", w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMachineTranslatedTextsImproperContentIDs(t *testing.T) {
	router, _ := newTestEnv(t)

	q := url.Values{}
	q.Set("exp_id", "exp_1")
	q.Set("state_name", "Introduction")
	q.Set("content_ids", "[invalid_json")
	q.Set("target_language_code", "hi")
	req := httptest.NewRequest(http.MethodGet, "/machine_translated_state_texts_handler?"+q.Encode(), nil)
	w := doRequest(router, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Improperly formatted content_ids: [invalid_json") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestMachineTranslatedTextsUnknownState(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("SELECT content_id, content_html FROM exploration_contents").
		WithArgs("exp_1", "Nope").
		WillReturnRows(sqlmock.NewRows([]string{"content_id", "content_html"}))

	q := url.Values{}
	q.Set("exp_id", "exp_1")
	q.Set("state_name", "Nope")
	q.Set("content_ids", `["content"]`)
	q.Set("target_language_code", "hi")
	req := httptest.NewRequest(http.MethodGet, "/machine_translated_state_texts_handler?"+q.Encode(), nil)
	w := doRequest(router, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMachineTranslatedTexts(t *testing.T) {
	tr := translation.NewDictionaryTranslator(map[string]map[string]string{
		"hi": {"<p>Hello</p>": "<p>नमस्ते</p>"},
	})
	router, mock := newTestEnvWithTranslator(t, tr)

	mock.ExpectQuery("SELECT content_id, content_html FROM exploration_contents").
		WithArgs("exp_1", "Introduction").
		WillReturnRows(sqlmock.NewRows([]string{"content_id", "content_html"}).
			AddRow("content", "<p>Hello</p>"))

	q := url.Values{}
	q.Set("exp_id", "exp_1")
	q.Set("state_name", "Introduction")
	q.Set("content_ids", `["content", "bogus_id"]`)
	q.Set("target_language_code", "hi")
	req := httptest.NewRequest(http.MethodGet, "/machine_translated_state_texts_handler?"+q.Encode(), nil)
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		TranslatedTexts map[string]*string `json:"translated_texts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got := body.TranslatedTexts["content"]; got == nil || *got != "<p>नमस्ते</p>" {
		t.Fatalf("unexpected translation: %v", got)
	}
	if got, ok := body.TranslatedTexts["bogus_id"]; !ok || got != nil {
		t.Fatalf("unknown content id should map to null, got %v present=%v", got, ok)
	}
}

func TestPreferredTranslationLanguageRequiresLogin(t *testing.T) {
	router, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/preferredtranslationlanguage", nil)
	w := doRequest(router, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "You must be logged in to access this resource.") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestPreferredTranslationLanguageRoundTrip(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectExec("INSERT INTO preferred_translation_languages").
		WithArgs("u1", "hi").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT language_code FROM preferred_translation_languages").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"language_code"}).AddRow("hi"))

	req := httptest.NewRequest(http.MethodPost, "/preferredtranslationlanguage",
		strings.NewReader(`{"language_code": "hi"}`))
	loginAs(t, req, "u1", "alice")
	if w := doRequest(router, req); w.Code != http.StatusOK {
		t.Fatalf("set: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/preferredtranslationlanguage", nil)
	loginAs(t, req, "u1", "alice")
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"preferred_language_code":"hi"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPreferredTranslationLanguageUnset(t *testing.T) {
	router, mock := newTestEnv(t)

	mock.ExpectQuery("SELECT language_code FROM preferred_translation_languages").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"language_code"}))

	req := httptest.NewRequest(http.MethodGet, "/preferredtranslationlanguage", nil)
	loginAs(t, req, "u1", "alice")
	w := doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"preferred_language_code":null`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
