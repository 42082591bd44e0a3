package v1

import (
	"net/http"

	"devso-backend/internal/delivery/http/response"
	"devso-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followUC domain.FollowUsecase
}

func NewFollowHandler(public, protected *gin.RouterGroup, followUC domain.FollowUsecase) {
	handler := &FollowHandler{followUC: followUC}

	protected.POST("/users/:username/follow", handler.Follow)
	protected.DELETE("/users/:username/follow", handler.Unfollow)

	public.GET("/users/:username/followers", handler.GetFollowers)
	public.GET("/users/:username/followings", handler.GetFollowings)
}

func (h *FollowHandler) Follow(c *gin.Context) {
	followerID := c.GetInt64(string(domain.KeyUserID))

	counts, err := h.followUC.Follow(c.Request.Context(), followerID, c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Followed", counts)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	followerID := c.GetInt64(string(domain.KeyUserID))

	counts, err := h.followUC.Unfollow(c.Request.Context(), followerID, c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unfollowed", counts)
}

func (h *FollowHandler) GetFollowers(c *gin.Context) {
	followers, err := h.followUC.GetFollowers(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Followers", followers)
}

func (h *FollowHandler) GetFollowings(c *gin.Context) {
	followings, err := h.followUC.GetFollowings(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Followings", followings)
}
