package handler

import (
	"net/http"

	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/logger"
)

// ShopHandler serves the public catalog listing. Purchases go through the
// same handler as the user route, mounted twice by the server.
type ShopHandler struct {
	catalog catalog.Service
}

func NewShopHandler(catalogService catalog.Service) *ShopHandler {
	return &ShopHandler{catalog: catalogService}
}

type shopItemsResponse struct {
	Items []domain.Item `json:"items"`
}

// HandleListItems provisions the catalog if needed and returns every item
// sorted by cost ascending.
func (h *ShopHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list shop items", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	respondJSON(w, http.StatusOK, shopItemsResponse{Items: items})
}
