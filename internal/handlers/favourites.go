package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type addFavouriteRequest struct {
	MovieID string `json:"movieId"`
}

type favouritesResponse struct {
	MovieIDs []string `json:"movieIds"`
}

// AddFavourite appends a movie id to the authenticated user's set.
// @Summary Add a favourite
// @Accept json
// @Produce json
// @Success 201 {object} handlers.messageResponse
// @Failure 400 {object} handlers.messageResponse
// @Failure 401 {object} handlers.messageResponse
// @Failure 404 {object} handlers.messageResponse
// @Router /favourites [post]
func (h *Handlers) AddFavourite(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.VerifyBearer(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.respondError(w, r, err, "Failed to add favourite")
		return
	}

	var req addFavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.MovieID == "" {
		h.respondMessage(w, http.StatusBadRequest, "Movie ID is required")
		return
	}

	if err := h.storage.AddFavourite(r.Context(), user.Email, req.MovieID); err != nil {
		h.respondError(w, r, err, "Failed to add favourite")
		return
	}

	h.respondJSON(w, http.StatusCreated, messageResponse{
		Message: "Movie added to favourites",
		MovieID: req.MovieID,
	})
}

// GetFavourites lists the authenticated user's favourite movie ids.
// @Summary List favourites
// @Produce json
// @Success 200 {object} handlers.favouritesResponse
// @Failure 401 {object} handlers.messageResponse
// @Failure 404 {object} handlers.messageResponse
// @Router /favourites [get]
func (h *Handlers) GetFavourites(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.VerifyBearer(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.respondError(w, r, err, "Failed to get favourites")
		return
	}

	movieIDs, err := h.storage.ListFavourites(r.Context(), user.Email)
	if err != nil {
		h.respondError(w, r, err, "Failed to get favourites")
		return
	}

	h.respondJSON(w, http.StatusOK, favouritesResponse{MovieIDs: movieIDs})
}

// RemoveFavourite removes a movie id from the authenticated user's set.
// @Summary Remove a favourite
// @Produce json
// @Success 200 {object} handlers.messageResponse
// @Failure 400 {object} handlers.messageResponse
// @Failure 401 {object} handlers.messageResponse
// @Failure 404 {object} handlers.messageResponse
// @Router /favourites/{movieId} [delete]
func (h *Handlers) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.VerifyBearer(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.respondError(w, r, err, "Failed to remove favourite")
		return
	}

	movieID := mux.Vars(r)["movieId"]
	if movieID == "" {
		h.respondMessage(w, http.StatusBadRequest, "Movie ID is required")
		return
	}

	if err := h.storage.RemoveFavourite(r.Context(), user.Email, movieID); err != nil {
		h.respondError(w, r, err, "Failed to remove favourite")
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{
		Message: "Movie removed from favourites",
		MovieID: movieID,
	})
}
