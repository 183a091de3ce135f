package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC domain.ProfileUsecase
	PrivacyUC domain.PrivacyUsecase
	SearchUC  domain.SearchUsecase
	ContactUC domain.ContactUsecase
	GDPRUC    domain.GDPRUsecase
	AuditUC   usecase.AuditUsecase
	Resolver  *middleware.PrincipalResolver
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can abort.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitRequests,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes resolve a principal when a token is present but never
	// require one: anonymous viewers see PUBLIC profiles.
	public := v1.Group("")
	public.Use(deps.Resolver.OptionalAuth())

	protected := v1.Group("")
	protected.Use(deps.Resolver.RequireAuth())
	{
		NewProfileHandler(public, protected, deps.ProfileUC)
		NewSearchHandler(public, deps.SearchUC)
		NewPrivacyHandler(protected, deps.PrivacyUC)
		NewContactHandler(protected, deps.ContactUC)
		NewGDPRHandler(protected, deps.GDPRUC)
		NewAuditHandler(protected, deps.AuditUC)
	}

	return r
}
