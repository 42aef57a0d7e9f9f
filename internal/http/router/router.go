package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/promptfolio-backend/internal/config"
	"github.com/ignatzorin/promptfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/promptfolio-backend/internal/http/middleware"
	"github.com/ignatzorin/promptfolio-backend/internal/ratelimit"
	"github.com/ignatzorin/promptfolio-backend/internal/service"
)

// Handlers набор хэндлеров, которые публикует роутер.
type Handlers struct {
	Storytelling *handlers.StorytellingHandler
	Portfolio    *handlers.PortfolioHandler
	GitHub       *handlers.GitHubHandler
	Health       *handlers.HealthHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	verifier service.TokenVerifier,
	limiter *ratelimit.Limiter,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Неподдерживаемый метод на существующем пути: 405, а не 404.
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedHeaders))

	r.GET("/health", h.Health.Health)

	auth := middleware.AuthMiddleware(verifier)
	optionalAuth := middleware.OptionalAuthMiddleware(verifier)

	// Функции, которые вызывает клиент.
	fn := r.Group("/functions/v1")
	{
		// Лимит проверяется до разбора тела.
		fn.POST("/ai-storytelling", optionalAuth, middleware.RateLimitMiddleware(limiter), h.Storytelling.Generate)
		fn.POST("/generate-portfolio", auth, h.Portfolio.Generate)
		fn.POST("/github-sync", auth, h.GitHub.ListRepos)
		fn.POST("/github-import", auth, h.GitHub.Import)
	}

	api := r.Group("/api")
	{
		api.GET("/portfolios/:id", middleware.UUIDValidator("id"), optionalAuth, h.Portfolio.GetPortfolio)
		api.GET("/stories", auth, h.Storytelling.ListStories)
	}

	return r
}
