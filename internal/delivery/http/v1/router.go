package v1

import (
	"net/http"
	"time"

	"devso-backend/config"
	"devso-backend/internal/delivery/http/middleware"
	"devso-backend/internal/delivery/http/response"
	"devso-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	UserUC    domain.UserUsecase
	FollowUC  domain.FollowUsecase
	RecruitUC domain.RecruitUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes with optional identity (personalizes reads)
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(deps.Config))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewUserHandler(public, protected, deps.UserUC)
		NewFollowHandler(public, protected, deps.FollowUC)
		NewRecruitHandler(public, protected, deps.RecruitUC)
	}

	return r
}
