package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osa911/teamchat/internal/api/constants"
	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/api/dto/v1/user"
	"github.com/osa911/teamchat/internal/api/mapper"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/media"
	"github.com/osa911/teamchat/internal/service"
	"github.com/osa911/teamchat/internal/utils"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateProfile stores the signed in user's profile
func (h *UserHandler) CreateProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	req, ok := validated[user.CreateProfileRequest](c, constants.ContextKeyCreateProfile)
	if !ok {
		return
	}

	profile := mapper.CreateProfileRequestToModel(req)
	if profile.UID == "" {
		profile.UID = identity.UID
	}

	if err := h.users.CreateUserProfile(c.Request.Context(), profile); err != nil {
		logging.GetGlobalLogger().Error("CreateProfile: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to create profile")
		return
	}

	created, err := h.users.GetUserProfileByUID(c.Request.Context(), profile.UID)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to load profile")
		return
	}
	utils.HandleCreated(c, resourcePath("profile"), mapper.ProfileToResponse(created))
}

// GetProfile returns the signed in user's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	profile, err := h.users.GetUserProfileByUID(c.Request.Context(), identity.UID)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to get profile")
		return
	}
	if profile == nil {
		utils.HandleError(c, http.StatusNotFound, common.ErrCodeNotFound, "Profile not found", nil)
		return
	}
	utils.HandleSuccess(c, mapper.ProfileToResponse(profile))
}

// UpdateProfile merges the given fields into the signed in user's profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	req, ok := validated[user.UpdateProfileRequest](c, constants.ContextKeyUpdateProfile)
	if !ok {
		return
	}

	profile, err := h.users.UpdateUserProfile(c.Request.Context(), identity.UID, mapper.UpdateProfileRequestToModel(req))
	if err != nil {
		logging.GetGlobalLogger().Error("UpdateProfile: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to update profile")
		return
	}
	utils.HandleSuccess(c, mapper.ProfileToResponse(profile))
}

// UploadProfilePicture stores the multipart "file" field and points the profile at it
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeBadRequest, "Missing file field", nil)
		return
	}
	if file.Size > media.MaxPictureSize {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation,
			fmt.Sprintf("Picture must be at most %d bytes", media.MaxPictureSize), nil)
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation, "Picture must be an image", nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, "Failed to read upload")
		return
	}
	defer f.Close()

	url, err := h.users.UpdateUserProfilePicture(c.Request.Context(), file.Filename, contentType, f)
	if err != nil {
		logging.GetGlobalLogger().Error("UploadProfilePicture: %v", err)
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to upload picture")
		return
	}
	utils.HandleSuccess(c, user.ProfilePictureResponse{URL: url})
}

// ListUsers returns one page of the directory, ?page=1&perPage=20
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation, err.Error(), nil)
		return
	}
	perPage, err := queryInt(c, "perPage", defaultPerPage)
	if err != nil {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation, err.Error(), nil)
		return
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	profiles, err := h.users.FetchUsersWithPagination(c.Request.Context(), page, perPage)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list users")
		return
	}
	total, err := h.users.FetchTotalUserCount(c.Request.Context())
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to count users")
		return
	}

	utils.HandleSuccess(c, user.ListUsersResponse{
		Users:   mapper.ProfilesToResponses(profiles),
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

// SearchUsers matches ?q= against usernames, case-insensitively
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.HandleError(c, http.StatusBadRequest, common.ErrCodeValidation, "q is required", nil)
		return
	}

	profiles, err := h.users.SearchUsers(c.Request.Context(), query)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to search users")
		return
	}
	utils.HandleSuccess(c, mapper.ProfilesToResponses(profiles))
}

func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	profile, err := h.users.GetUserProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to get user")
		return
	}
	utils.HandleSuccess(c, mapper.ProfileToResponse(profile))
}

// UsernameExists is public so the sign up form can check availability
func (h *UserHandler) UsernameExists(c *gin.Context) {
	username := c.Param("username")
	exists, err := h.users.CheckIfUsernameExists(c.Request.Context(), username)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to check username")
		return
	}
	utils.HandleSuccess(c, user.UsernameExistsResponse{Username: username, Exists: exists})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}
