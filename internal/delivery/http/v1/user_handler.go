package v1

import (
	"net/http"

	"devso-backend/internal/delivery/http/response"
	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(public, protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	// Profile view is public; an attached identity personalizes isFollowing
	public.GET("/users/:username", handler.GetProfile)

	protected.GET("/users/search", handler.SearchUsers)
	protected.PUT("/users/:username/profile", handler.UpdateProfile)
	protected.PUT("/users/:username/password", handler.ChangePassword)
	protected.DELETE("/users/:username", handler.DeleteAccount)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := c.GetInt64(string(domain.KeyUserID)) // 0 when anonymous

	profile, err := h.userUC.GetProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User profile", profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID := c.GetInt64(string(domain.KeyUserID))

	var req domain.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.userUC.UpdateFullProfile(c.Request.Context(), c.Param("username"), actorID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	actorID := c.GetInt64(string(domain.KeyUserID))

	var req domain.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.userUC.ChangePassword(c.Request.Context(), c.Param("username"), actorID, &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed", nil)
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	actorID := c.GetInt64(string(domain.KeyUserID))

	users, err := h.userUC.SearchUsers(c.Request.Context(), c.Query("q"), actorID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Users", users)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	actorID := c.GetInt64(string(domain.KeyUserID))

	if err := h.userUC.DeleteAccount(c.Request.Context(), c.Param("username"), actorID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
