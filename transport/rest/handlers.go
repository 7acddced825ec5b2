package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

type HistoryHandler struct {
	logger   *slog.Logger
	registry *tictactoe.Registry
}

func NewHistoryHandler(logger *slog.Logger, registry *tictactoe.Registry) *HistoryHandler {
	return &HistoryHandler{
		logger:   logger,
		registry: registry,
	}
}

// List serves the finished non-cancelled games in creation order.
func (that *HistoryHandler) List(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, that.registry.Records())
}

// Show serves one game by its 1-based history index.
func (that *HistoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	rawIndex := strings.TrimPrefix(r.URL.Path, "/history/")

	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		http.Error(w, "invalid game index", http.StatusBadRequest)
		return
	}

	session, err := that.registry.GetByIndex(index)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game doesn't exist", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, session.Snapshot())
}

func (that *HistoryHandler) writeJSON(w http.ResponseWriter, v any) {
	log := that.logger.With("method", "writeJSON")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
