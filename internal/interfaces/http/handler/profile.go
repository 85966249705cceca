package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/retailops/backend/internal/application/identity"
)

// ProfileHandler handles the signed-in user's own account endpoints
type ProfileHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userService *identityapp.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// UpdateProfileRequest is the request body for editing the own profile
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// ChangePasswordRequest is the request body for changing the password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// Get returns the signed-in user's account
func (h *ProfileHandler) Get(c *gin.Context) {
	currentID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), currentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Update edits the caller's display name. The path ID must match the
// authenticated account; role and active flag are admin operations.
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	currentID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if currentID != id {
		h.Forbidden(c, "You can only edit your own profile")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateOwnProfile(c.Request.Context(), currentID, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword verifies the current password and replaces it
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	currentID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), currentID, req.OldPassword, req.NewPassword); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password has been changed"})
}

// RegisterRoutes registers the profile endpoints
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PATCH("/:id", h.Update)
		profile.POST("/change-password", h.ChangePassword)
	}
}
