package http

import (
	"net/http"
	"testing"

	"moodtown/internal/domain"
)

func TestLetterAddAndList(t *testing.T) {
	env := newTestEnv()
	cookie := env.sessionCookie(testUser())

	rec := performRequest(env.router, http.MethodPost, "/api/letters", map[string]any{
		"title":   "안녕",
		"content": "반가워요",
	}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodGet, "/api/letters", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() == "[]" {
		t.Fatalf("expected one letter in list")
	}
}

func TestLetterGenerateInvalidType(t *testing.T) {
	env := newTestEnv()
	cookie := env.sessionCookie(testUser())

	rec := performRequest(env.router, http.MethodPost, "/api/letters/generate", map[string]any{
		"type": "gossip",
	}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(rec)["error"] != "invalid letter type" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLetterGenerateCelebration(t *testing.T) {
	env := newTestEnv()
	cookie := env.sessionCookie(testUser())
	env.llmClient.Response = `{"title": "축하해요 🎉", "content": "열매가 열렸어요!", "from": "노랑이 & 초록이"}`

	rec := performRequest(env.router, http.MethodPost, "/api/letters/generate", map[string]any{
		"type":        domain.LetterTypeCelebration,
		"fruit_count": 3,
	}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	letter := decodeBody(rec)
	if letter["type"] != domain.LetterTypeCelebration {
		t.Fatalf("expected celebration letter, got %v", letter["type"])
	}
	if len(env.letters.letters) != 1 {
		t.Fatalf("expected generated letter persisted, got %d", len(env.letters.letters))
	}
}

func TestLetterUnreadCountAndMarkRead(t *testing.T) {
	env := newTestEnv()
	cookie := env.sessionCookie(testUser())
	env.letters.letters = []domain.Letter{
		{ID: "l1", Title: "하나"},
		{ID: "l2", Title: "둘", IsRead: true},
	}

	rec := performRequest(env.router, http.MethodGet, "/api/letters/unread/count", nil, cookie)
	if decodeBody(rec)["count"] != float64(1) {
		t.Fatalf("expected unread count 1, got %s", rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodPost, "/api/letters/l1/read", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodGet, "/api/letters/unread/count", nil, cookie)
	if decodeBody(rec)["count"] != float64(0) {
		t.Fatalf("expected unread count 0, got %s", rec.Body.String())
	}
}

func TestLetterMarkReadNotFound(t *testing.T) {
	env := newTestEnv()
	cookie := env.sessionCookie(testUser())

	rec := performRequest(env.router, http.MethodPost, "/api/letters/missing/read", nil, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
