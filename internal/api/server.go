package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/corkboard-app/corkboard/internal/config"
	"github.com/corkboard-app/corkboard/internal/constants"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
	"github.com/corkboard-app/corkboard/internal/logger"
	"github.com/corkboard-app/corkboard/internal/models"
	"github.com/corkboard-app/corkboard/internal/search"
)

type Server struct {
	cfg    *config.Config
	repo   *models.CardRepository
	engine *search.Engine
	server *http.Server
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type CreateCardRequest struct {
	Text     string  `json:"text"`
	BackText string  `json:"back_text"`
	Tags     string  `json:"tags"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    string  `json:"color"`
}

type UpdateCardRequest struct {
	Text     *string `json:"text,omitempty"`
	BackText *string `json:"back_text,omitempty"`
	Tags     *string `json:"tags,omitempty"`
	Color    *string `json:"color,omitempty"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Cleared     bool           `json:"cleared"`
	MatchingIDs []int          `json:"matching_ids"`
	Cards       []*models.Card `json:"cards"`
}

type MoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewServer(cfg *config.Config, repo *models.CardRepository, engine *search.Engine) *Server {
	return &Server{
		cfg:    cfg,
		repo:   repo,
		engine: engine,
	}
}

// Router builds the full route table. Split out from Start so tests can
// exercise handlers without binding a socket.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	// Cards endpoints
	api.HandleFunc("/cards", s.handleListCards).Methods("GET")
	api.HandleFunc("/cards", s.handleCreateCard).Methods("POST")
	api.HandleFunc("/cards/search", s.handleSearchCards).Methods("POST")
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleGetCard).Methods("GET")
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleUpdateCard).Methods("PUT")
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleDeleteCard).Methods("DELETE")
	api.HandleFunc("/cards/{id:[0-9]+}/move", s.handleMoveCard).Methods("PUT")
	api.HandleFunc("/cards/{id:[0-9]+}/tags", s.handleUpdateCardTags).Methods("PUT")

	// Tags endpoint
	api.HandleFunc("/tags", s.handleListTags).Methods("GET")

	// Statistics and info endpoints
	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/config", s.handleConfig).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	return c.Handler(router)
}

func (s *Server) Start(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Starting HTTP API server on %s", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: statusCode < 400,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: false,
		Error:   err.Error(),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response: %v", err)
	}
}

func (s *Server) parseIntParam(r *http.Request, param string) (int, error) {
	vars := mux.Vars(r)
	str, exists := vars[param]
	if !exists {
		return 0, fmt.Errorf("missing parameter: %s", param)
	}
	return strconv.Atoi(str)
}

func (s *Server) parseTags(tagsStr string) []string {
	if tagsStr == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(tagsStr, ",") {
		cleanTag := strings.TrimSpace(tag)
		if cleanTag != "" {
			tags = append(tags, cleanTag)
		}
	}
	return tags
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if _, err := s.repo.List(1, 0); err != nil {
		health["status"] = "unhealthy"
		health["database_error"] = err.Error()
		s.writeJSON(w, http.StatusServiceUnavailable, health)
		return
	}

	s.writeJSON(w, http.StatusOK, health)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil {
			offset = o
		}
	}

	cards, err := s.repo.List(limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIntParam(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	card, err := s.repo.GetByID(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	s.writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, interrors.ErrEmptyText)
		return
	}

	color := req.Color
	if color == "" {
		color = s.cfg.DefaultCardColor
	}

	card, err := s.repo.Create(req.Text, req.BackText, s.parseTags(req.Tags), req.X, req.Y, color)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIntParam(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	card, err := s.repo.GetByID(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			s.writeError(w, http.StatusBadRequest, interrors.ErrEmptyText)
			return
		}
		card.Text = *req.Text
	}
	if req.BackText != nil {
		card.BackText = *req.BackText
	}
	if req.Color != nil {
		card.Color = *req.Color
	}

	if err := s.repo.Update(card); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if req.Tags != nil {
		if err := s.repo.UpdateTags(card.ID, s.parseTags(*req.Tags)); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIntParam(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.repo.Delete(id); err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted successfully"})
}

func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIntParam(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if err := s.repo.Move(id, req.X, req.Y); err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}

	card, err := s.repo.GetByID(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleSearchCards(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	result, cards, err := s.engine.MatchingCards(req.Query)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	ids := make([]int, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}

	s.writeJSON(w, http.StatusOK, SearchResponse{
		Cleared:     result.Cleared,
		MatchingIDs: ids,
		Cards:       cards,
	})
}

func (s *Server) handleListTags(w http.ResponseWriter, _ *http.Request) {
	tags, err := s.repo.GetAllTags()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleUpdateCardTags(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIntParam(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Tags string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if _, err := s.repo.GetByID(id); err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	tags := s.parseTags(req.Tags)
	if err := s.repo.UpdateTags(id, tags); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Tags updated successfully",
		"tags":    tags,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	cards, err := s.repo.ListAll()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	tags, err := s.repo.GetAllTags()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	stats := map[string]interface{}{
		"total_cards":   len(cards),
		"total_tags":    len(tags),
		"database_path": s.cfg.GetDatabasePath(),
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	cfg := map[string]interface{}{
		"debug_mode":         s.cfg.Debug,
		"data_directory":     s.cfg.DataDirectory,
		"default_card_color": s.cfg.DefaultCardColor,
		"grid_size":          s.cfg.GridSize,
		"snap_to_grid":       s.cfg.SnapToGrid,
		"card_width":         constants.DefaultCardWidth,
		"card_height":        constants.DefaultCardHeight,
	}

	s.writeJSON(w, http.StatusOK, cfg)
}

func isNotFound(err error) bool {
	return errors.Is(err, interrors.ErrCardNotFound)
}
