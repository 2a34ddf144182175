package profile

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
	"github.com/user/devconnect-go/validation"
)

// ProfileHandlers exposes the profile store over HTTP.
type ProfileHandlers struct {
	service *ProfileService
	github  *GithubClient
}

// NewProfileHandlers creates new ProfileHandlers.
func NewProfileHandlers(service *ProfileService, github *GithubClient) *ProfileHandlers {
	return &ProfileHandlers{service: service, github: github}
}

// RegisterRoutes mounts the profile routes. List, fetch-by-user and the
// GitHub lookup are public; everything else requires a valid bearer token.
func (h *ProfileHandlers) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Get("/", h.handleListProfiles)
	router.Get("/user/{user_id}", h.handleGetByUserID)
	router.Get("/github/{username}", h.handleGithubRepos)

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", h.handleGetOwnProfile)
		r.Post("/", h.handleUpsertProfile)
		r.Delete("/", h.handleDeleteAccount)
		r.Put("/experience", h.handleAddExperience)
		r.Delete("/experience/{exp_id}", h.handleRemoveExperience)
		r.Put("/education", h.handleAddEducation)
		r.Delete("/education/{edu_id}", h.handleRemoveEducation)
	})
}

// handleGetOwnProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/profile/me [get]
func (h *ProfileHandlers) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	p, err := h.service.GetOwnProfile(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleUpsertProfile godoc
// @Summary Create or update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileBody body profile.UpsertProfileRequest true "Profile fields"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} apperror.ValidationResponse
// @Router /api/profile [post]
func (h *ProfileHandlers) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Check(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	p, err := h.service.UpsertProfile(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleListProfiles godoc
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} profile.Profile
// @Router /api/profile [get]
func (h *ProfileHandlers) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListProfiles(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, profiles)
}

// handleGetByUserID godoc
// @Summary Get a profile by user id
// @Tags profile
// @Produce json
// @Param user_id path int true "User id"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/profile/user/{user_id} [get]
func (h *ProfileHandlers) handleGetByUserID(w http.ResponseWriter, r *http.Request) {
	// A malformed id is reported exactly like a missing profile.
	rawID := chi.URLParam(r, "user_id")
	userID, err := strconv.ParseInt(rawID, 10, 32)
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Profile not found", nil))
		return
	}

	p, err := h.service.GetProfileByUserID(r.Context(), int32(userID))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleDeleteAccount godoc
// @Summary Delete the caller's profile and account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} apperror.ErrorResponse
// @Router /api/profile [delete]
func (h *ProfileHandlers) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, apperror.ErrorResponse{Msg: "User deleted"})
}

// handleAddExperience godoc
// @Summary Append an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param experienceBody body profile.AddExperienceRequest true "Experience entry"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} apperror.ValidationResponse
// @Router /api/profile/experience [put]
func (h *ProfileHandlers) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	var req AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Check(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	p, err := h.service.AddExperience(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleRemoveExperience godoc
// @Summary Remove an experience entry by id
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param exp_id path string true "Experience id"
// @Success 200 {object} profile.Profile
// @Router /api/profile/experience/{exp_id} [delete]
func (h *ProfileHandlers) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	p, err := h.service.RemoveExperience(r.Context(), userID, chi.URLParam(r, "exp_id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleAddEducation godoc
// @Summary Append an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param educationBody body profile.AddEducationRequest true "Education entry"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} apperror.ValidationResponse
// @Router /api/profile/education [put]
func (h *ProfileHandlers) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	var req AddEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Check(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	p, err := h.service.AddEducation(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleRemoveEducation godoc
// @Summary Remove an education entry by id
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param edu_id path string true "Education id"
// @Success 200 {object} profile.Profile
// @Router /api/profile/education/{edu_id} [delete]
func (h *ProfileHandlers) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return
	}

	p, err := h.service.RemoveEducation(r.Context(), userID, chi.URLParam(r, "edu_id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, p)
}

// handleGithubRepos godoc
// @Summary List a GitHub user's latest repositories
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} profile.Repo
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/profile/github/{username} [get]
func (h *ProfileHandlers) handleGithubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.github.Repos(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, repos)
}
