package v1

import (
	"net/http"
	"strconv"

	"devso-backend/internal/delivery/http/response"
	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecruitHandler struct {
	recruitUC domain.RecruitUsecase
}

func NewRecruitHandler(public, protected *gin.RouterGroup, recruitUC domain.RecruitUsecase) {
	handler := &RecruitHandler{recruitUC: recruitUC}

	// Reads are public; an attached identity adds bookmark flags
	public.GET("/recruits", handler.FindAll)
	public.GET("/recruits/:id", handler.FindByID)

	// Enum catalogs for the posting form
	enums := public.Group("/recruits/enum")
	{
		enums.GET("/position", handler.GetPositions)
		enums.GET("/type", handler.GetTypes)
		enums.GET("/progress-type", handler.GetProgressTypes)
		enums.GET("/tech-stacks", handler.GetTechStacks)
		enums.GET("/contact", handler.GetContactMethods)
		enums.GET("/duration", handler.GetDurations)
		enums.GET("/memberCount", handler.GetMemberCounts)
	}

	protected.POST("/recruits", handler.Create)
	protected.PUT("/recruits/:id", handler.Update)
	protected.DELETE("/recruits/:id", handler.Delete)
	protected.PUT("/recruits/:id/status", handler.ToggleStatus)
	protected.POST("/recruits/:id/bookmark", handler.ToggleBookmark)
}

func recruitID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid recruit id"))
		return 0, false
	}
	return id, true
}

func (h *RecruitHandler) Create(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	var req domain.RecruitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	recruit, err := h.recruitUC.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Recruit post created", recruit)
}

func (h *RecruitHandler) FindAll(c *gin.Context) {
	viewerID := c.GetInt64(string(domain.KeyUserID))

	recruits, err := h.recruitUC.FindAll(c.Request.Context(), viewerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruit posts", recruits)
}

func (h *RecruitHandler) FindByID(c *gin.Context) {
	id, ok := recruitID(c)
	if !ok {
		return
	}
	viewerID := c.GetInt64(string(domain.KeyUserID))

	recruit, err := h.recruitUC.FindByID(c.Request.Context(), id, viewerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruit post", recruit)
}

func (h *RecruitHandler) Update(c *gin.Context) {
	id, ok := recruitID(c)
	if !ok {
		return
	}
	userID := c.GetInt64(string(domain.KeyUserID))

	var req domain.RecruitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	recruit, err := h.recruitUC.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruit post updated", recruit)
}

func (h *RecruitHandler) Delete(c *gin.Context) {
	id, ok := recruitID(c)
	if !ok {
		return
	}
	userID := c.GetInt64(string(domain.KeyUserID))

	if err := h.recruitUC.Delete(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecruitHandler) ToggleStatus(c *gin.Context) {
	id, ok := recruitID(c)
	if !ok {
		return
	}
	userID := c.GetInt64(string(domain.KeyUserID))

	status, err := h.recruitUC.ToggleStatus(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated", status)
}

func (h *RecruitHandler) ToggleBookmark(c *gin.Context) {
	id, ok := recruitID(c)
	if !ok {
		return
	}
	userID := c.GetInt64(string(domain.KeyUserID))

	bookmarked, err := h.recruitUC.ToggleBookmark(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bookmark toggled", bookmarked)
}

func (h *RecruitHandler) GetPositions(c *gin.Context) {
	c.JSON(http.StatusOK, domain.RecruitPositionOptions())
}

func (h *RecruitHandler) GetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, domain.RecruitTypeOptions())
}

func (h *RecruitHandler) GetProgressTypes(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ProgressTypeOptions())
}

func (h *RecruitHandler) GetTechStacks(c *gin.Context) {
	c.JSON(http.StatusOK, domain.TechStackOptions())
}

func (h *RecruitHandler) GetContactMethods(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ContactMethodOptions())
}

func (h *RecruitHandler) GetDurations(c *gin.Context) {
	c.JSON(http.StatusOK, domain.DurationOptions())
}

func (h *RecruitHandler) GetMemberCounts(c *gin.Context) {
	c.JSON(http.StatusOK, domain.MemberCountOptions())
}
