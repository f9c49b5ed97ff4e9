package bootstrap

import (
	"fmt"
	"io"
	"time"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap handles common server setup that can be reused across projects
type Bootstrap struct {
	cfg *config.Config
}

// NewBootstrap creates a new bootstrap instance
func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates and configures a gin engine with common middleware
// This is reusable across different projects
func (b *Bootstrap) SetupEngine() *gin.Engine {
	// Set Gin mode based on environment
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	// Create engine without default middleware
	engine := gin.New()

	// Essential middleware (common for all projects)
	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(b.requestTimeout()))
	engine.Use(middleware.LoggerMiddleware())

	return engine
}

func (b *Bootstrap) requestTimeout() time.Duration {
	if b.cfg.Server.RequestTimeout > 0 {
		return b.cfg.Server.RequestTimeout
	}
	return middleware.DefaultTimeout
}

// recoveryHandler logs the panic and answers with the standard error body
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Error("Panic Recovered",
		"error", fmt.Sprint(recovered),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.AbortWithStatusJSON(sharedError.InternalServerError.Status, sharedError.InternalServerError)
}
