package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	suggestpkg "moviebuddy/services/suggest"
)

type suggestController interface {
	Lookup(ctx context.Context, term string) suggestpkg.Suggestions
}

var _ suggestController = (*suggestpkg.Controller)(nil)

type SuggestHandler struct {
	Controller suggestController
}

func NewSuggestHandler(c suggestController) *SuggestHandler {
	return &SuggestHandler{Controller: c}
}

// Suggest answers typeahead lookups. Debouncing happens client-side; this
// endpoint always resolves immediately. A blank term yields empty lists.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	result := h.Controller.Lookup(r.Context(), term)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
