package handlers

import (
	"context"
	"net/http"

	"github.com/abhishekdhull21/pos-server/internal/entity"
)

type UserFinder interface {
	GetByID(ctx context.Context, userID int64) (*entity.User, error)
}

type UserHandler struct {
	users UserFinder
}

func NewUserHandler(users UserFinder) *UserHandler {
	return &UserHandler{users: users}
}

// Get é um endpoint de demonstração: lookup por id fixo.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"let": user})
}
