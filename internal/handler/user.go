package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/adudhe01/runroom/internal/auth"
	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/ledger"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/repository"
	"github.com/adudhe01/runroom/internal/snapshot"
	"github.com/adudhe01/runroom/internal/upload"
)

// UserHandler serves the authenticated user surface.
type UserHandler struct {
	users     repository.User
	ledger    ledger.Service
	catalog   catalog.Service
	snapshots snapshot.Builder
	avatars   *upload.AvatarStore
}

func NewUserHandler(users repository.User, ledgerService ledger.Service, catalogService catalog.Service, snapshots snapshot.Builder, avatars *upload.AvatarStore) *UserHandler {
	return &UserHandler{
		users:     users,
		ledger:    ledgerService,
		catalog:   catalogService,
		snapshots: snapshots,
		avatars:   avatars,
	}
}

// currentUser loads the user the auth middleware resolved. A missing context
// entry means the route was mounted without the middleware.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingAuthToken)
		return nil, false
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return user, true
}

// HandleMe returns the full snapshot for the authenticated user.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	snap, err := h.snapshots.Build(r.Context(), user)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// BuyItemRequest identifies the catalog item to purchase.
type BuyItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

// HandleBuyItem spends points on an item and returns the new balance with
// the formatted inventory.
func (h *UserHandler) HandleBuyItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingAuthToken)
		return
	}

	var req BuyItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	result, err := h.ledger.Purchase(r.Context(), userID, req.ItemID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// SaveRoomLayoutRequest carries the full replacement layout.
type SaveRoomLayoutRequest struct {
	Layout []domain.RoomPlacement `json:"layout"`
}

// saveRoomLayoutResponse returns the formatted, item-joined layout.
type saveRoomLayoutResponse struct {
	Layout []domain.PlacementDetail `json:"layout"`
}

// HandleSaveRoomLayout replaces the stored layout wholesale.
func (h *UserHandler) HandleSaveRoomLayout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingAuthToken)
		return
	}

	var req SaveRoomLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	formatted, err := h.ledger.SaveRoomLayout(r.Context(), userID, req.Layout)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, saveRoomLayoutResponse{Layout: formatted})
}

// updateProfilePictureResponse returns the refreshed identity slice.
type updateProfilePictureResponse struct {
	User domain.UserProfile `json:"user"`
}

// HandleUpdateProfilePicture sets, replaces, or removes the avatar. An
// uploaded file wins; removePicture=true clears it; a bare profilePicture
// value is kept as a URL fallback.
func (h *UserHandler) HandleUpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(upload.MaxAvatarBytes + 1<<20); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
	} else if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	previous := user.ProfilePicture

	if file, header, err := r.FormFile("profilePicture"); err == nil {
		defer file.Close()
		publicPath, saveErr := h.avatars.Save(file, header)
		if saveErr != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidFile)
			return
		}
		user.ProfilePicture = &publicPath
	} else if r.FormValue("removePicture") == "true" {
		user.ProfilePicture = nil
	} else if fallback := r.FormValue("profilePicture"); fallback != "" {
		user.ProfilePicture = &fallback
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		log.Error("Failed to persist profile picture", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgUpdatePictureFailed)
		return
	}

	// Best effort cleanup of the replaced local file.
	if previous != nil && (user.ProfilePicture == nil || *user.ProfilePicture != *previous) {
		if err := h.avatars.Remove(*previous); err != nil {
			log.Warn("Failed to remove replaced avatar", "error", err)
		}
	}

	snap, err := h.snapshots.Build(r.Context(), user)
	if err != nil {
		log.Error("Failed to build snapshot after picture update", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgUpdatePictureFailed)
		return
	}

	respondJSON(w, http.StatusOK, updateProfilePictureResponse{User: snap.User})
}

// adminUserSummary is one row of the unauthenticated listing. Credentials
// and provider tokens are never included.
type adminUserSummary struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	TotalKm         float64              `json:"totalKm"`
	PointsEarned    int                  `json:"pointsEarned"`
	PointsSpent     int                  `json:"pointsSpent"`
	PointsRemaining int                  `json:"pointsRemaining"`
	StravaConnected bool                 `json:"stravaConnected"`
	InventoryCount  int                  `json:"inventoryCount"`
	RoomLayoutCount int                  `json:"roomLayoutCount"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Inventory       []adminItemRef       `json:"inventory"`
	RoomLayout      []adminPlacementRef  `json:"roomLayout"`
}

type adminItemRef struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName,omitempty"`
	ItemSKU  string `json:"itemSku,omitempty"`
}

type adminPlacementRef struct {
	ItemID   string        `json:"itemId"`
	ItemName string        `json:"itemName,omitempty"`
	ItemSKU  string        `json:"itemSku,omitempty"`
	Position adminPosition `json:"position"`
	Rotation float64       `json:"rotation"`
	Scale    float64       `json:"scale"`
}

type adminPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type adminUsersResponse struct {
	Total int                `json:"total"`
	Users []adminUserSummary `json:"users"`
}

// HandleAllUsers lists every user with ownership counts. Development and
// debugging surface, newest first.
func (h *UserHandler) HandleAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list users", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgFetchUsersFailed)
		return
	}

	summaries := make([]adminUserSummary, 0, len(users))
	for i := range users {
		u := &users[i]

		inventory := make([]adminItemRef, 0, len(u.Inventory))
		for _, entry := range u.Inventory {
			ref := adminItemRef{ItemID: entry.ItemID}
			if item, err := h.catalog.GetItem(r.Context(), entry.ItemID); err == nil {
				ref.ItemName = item.Name
				ref.ItemSKU = item.SKU
			}
			inventory = append(inventory, ref)
		}

		layout := make([]adminPlacementRef, 0, len(u.RoomLayout))
		for _, placement := range u.RoomLayout {
			ref := adminPlacementRef{
				ItemID:   placement.ItemID,
				Position: adminPosition{X: placement.X, Y: placement.Y, Z: placement.Z},
				Rotation: placement.Rotation,
				Scale:    placement.Scale,
			}
			if item, err := h.catalog.GetItem(r.Context(), placement.ItemID); err == nil {
				ref.ItemName = item.Name
				ref.ItemSKU = item.SKU
			}
			layout = append(layout, ref)
		}

		summaries = append(summaries, adminUserSummary{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			TotalKm:         u.TotalKm,
			PointsEarned:    u.PointsEarned,
			PointsSpent:     u.PointsSpent,
			PointsRemaining: u.PointsRemaining(),
			StravaConnected: u.StravaConnected(),
			InventoryCount:  len(u.Inventory),
			RoomLayoutCount: len(u.RoomLayout),
			CreatedAt:       u.CreatedAt,
			UpdatedAt:       u.UpdatedAt,
			Inventory:       inventory,
			RoomLayout:      layout,
		})
	}

	respondJSON(w, http.StatusOK, adminUsersResponse{Total: len(summaries), Users: summaries})
}
