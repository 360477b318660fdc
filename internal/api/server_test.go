package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/corkboard-app/corkboard/internal/config"
	"github.com/corkboard-app/corkboard/internal/models"
	"github.com/corkboard-app/corkboard/internal/search"
)

func newTestServer(t *testing.T) (*Server, *models.CardRepository) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			back_text TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			color TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create cards table: %v", err)
	}

	repo := models.NewCardRepository(db)
	cfg := &config.Config{
		DefaultCardColor: "yellow",
		GridSize:         20,
	}
	return NewServer(cfg, repo, search.NewEngine(repo)), repo
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doRequest(t, router, "GET", "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("Expected success response")
	}
}

func TestCreateAndGetCard(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doRequest(t, router, "POST", "/api/v1/cards", CreateCardRequest{
		Text:     "Learn Python basics",
		BackText: "Start with the tutorial",
		Tags:     "python, learning",
		X:        100,
		Y:        50,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected card object, got %T", resp.Data)
	}
	if data["text"] != "Learn Python basics" {
		t.Errorf("Expected card text preserved, got %v", data["text"])
	}
	// Empty color falls back to the configured default.
	if data["color"] != "yellow" {
		t.Errorf("Expected default color yellow, got %v", data["color"])
	}

	id := int(data["id"].(float64))
	rec = doRequest(t, router, "GET", fmt.Sprintf("/api/v1/cards/%d", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
}

func TestCreateCardRejectsEmptyText(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doRequest(t, router, "POST", "/api/v1/cards", CreateCardRequest{Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("Expected failure response")
	}
}

func TestGetMissingCard(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doRequest(t, router, "GET", "/api/v1/cards/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
}

func TestSearchCards(t *testing.T) {
	server, repo := newTestServer(t)
	router := server.Router()

	if _, err := repo.Create("Learn Python basics", "", []string{"learning"}, 0, 0, "yellow"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	if _, err := repo.Create("Rust ownership notes", "", []string{"learning"}, 0, 0, "blue"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	rec := doRequest(t, router, "POST", "/api/v1/cards/search", SearchRequest{Query: "python or rust"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["cleared"].(bool) {
		t.Error("Expected cleared=false for non-empty query")
	}
	if ids := data["matching_ids"].([]interface{}); len(ids) != 2 {
		t.Errorf("Expected 2 matching IDs, got %d", len(ids))
	}

	rec = doRequest(t, router, "POST", "/api/v1/cards/search", SearchRequest{Query: "python not basics"})
	resp = decodeResponse(t, rec)
	data = resp.Data.(map[string]interface{})
	if ids := data["matching_ids"].([]interface{}); len(ids) != 0 {
		t.Errorf("Expected no matches, got %d", len(ids))
	}
}

func TestSearchCardsEmptyQueryCleared(t *testing.T) {
	server, repo := newTestServer(t)
	router := server.Router()

	if _, err := repo.Create("Anything at all", "", nil, 0, 0, "yellow"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	rec := doRequest(t, router, "POST", "/api/v1/cards/search", SearchRequest{Query: "   "})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if !data["cleared"].(bool) {
		t.Error("Expected cleared=true for blank query")
	}
	// A cleared filter carries no match set; the caller shows everything.
	if ids := data["matching_ids"].([]interface{}); len(ids) != 0 {
		t.Errorf("Expected empty matching_ids on clear, got %d", len(ids))
	}
}

func TestMoveCard(t *testing.T) {
	server, repo := newTestServer(t)
	router := server.Router()

	card, err := repo.Create("Movable card", "", nil, 0, 0, "yellow")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	rec := doRequest(t, router, "PUT", fmt.Sprintf("/api/v1/cards/%d/move", card.ID), MoveRequest{X: 240, Y: -60})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	moved, err := repo.GetByID(card.ID)
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if moved.X != 240 || moved.Y != -60 {
		t.Errorf("Expected position (240,-60), got (%v,%v)", moved.X, moved.Y)
	}

	rec = doRequest(t, router, "PUT", "/api/v1/cards/999/move", MoveRequest{X: 1, Y: 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 for missing card, got %d", rec.Code)
	}
}

func TestUpdateCardPartial(t *testing.T) {
	server, repo := newTestServer(t)
	router := server.Router()

	card, err := repo.Create("Original front", "Original back", []string{"old"}, 0, 0, "yellow")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	newBack := "Updated back"
	newTags := "fresh, shiny"
	rec := doRequest(t, router, "PUT", fmt.Sprintf("/api/v1/cards/%d", card.ID), UpdateCardRequest{
		BackText: &newBack,
		Tags:     &newTags,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := repo.GetByID(card.ID)
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if updated.Text != "Original front" {
		t.Errorf("Text should be untouched, got %q", updated.Text)
	}
	if updated.BackText != "Updated back" {
		t.Errorf("Expected updated back text, got %q", updated.BackText)
	}
	if len(updated.Tags) != 2 || updated.Tags[0] != "fresh" || updated.Tags[1] != "shiny" {
		t.Errorf("Expected tags [fresh shiny], got %v", updated.Tags)
	}
}

func TestDeleteCard(t *testing.T) {
	server, repo := newTestServer(t)
	router := server.Router()

	card, err := repo.Create("Doomed card", "", nil, 0, 0, "yellow")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	rec := doRequest(t, router, "DELETE", fmt.Sprintf("/api/v1/cards/%d", card.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, "DELETE", fmt.Sprintf("/api/v1/cards/%d", card.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 on double delete, got %d", rec.Code)
	}
}

func TestListTagsAndStats(t *testing.T) {
	server, repo := newTestServer(t)
	router := server.Router()

	if _, err := repo.Create("One", "", []string{"a", "b"}, 0, 0, "yellow"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	if _, err := repo.Create("Two", "", []string{"b"}, 0, 0, "yellow"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	rec := doRequest(t, router, "GET", "/api/v1/tags", nil)
	resp := decodeResponse(t, rec)
	tags := resp.Data.(map[string]interface{})
	if tags["b"].(float64) != 2 {
		t.Errorf("Expected tag b count 2, got %v", tags["b"])
	}

	rec = doRequest(t, router, "GET", "/api/v1/stats", nil)
	resp = decodeResponse(t, rec)
	stats := resp.Data.(map[string]interface{})
	if stats["total_cards"].(float64) != 2 {
		t.Errorf("Expected 2 total cards, got %v", stats["total_cards"])
	}
	if stats["total_tags"].(float64) != 2 {
		t.Errorf("Expected 2 total tags, got %v", stats["total_tags"])
	}
}
