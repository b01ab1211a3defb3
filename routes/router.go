package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/sportlink/sportlink/config"
	"github.com/sportlink/sportlink/internal/auth"
	"github.com/sportlink/sportlink/internal/club"
	"github.com/sportlink/sportlink/internal/feed"
	"github.com/sportlink/sportlink/internal/message"
	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/pkg/metrics"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	r.Use(collector.Middleware())
	r.GET("/metrics", metrics.Handler(registry))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiterCfg := middleware.DefaultRateLimiterConfig()
	limiterCfg.Rate = rate.Limit(float64(appConfig.RateLimit.AuthPerMinute) / 60.0)
	limiterCfg.Burst = appConfig.RateLimit.AuthBurst
	limiter := middleware.NewRateLimiter(limiterCfg)

	jwtSecret := appConfig.JWT.AccessTokenSecret

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig, limiter)
	club.ClubRoutes(api, db, appConfig, jwtSecret)
	feed.FeedRoutes(api, db, appConfig, jwtSecret)
	message.MessageRoutes(api, db, appConfig, jwtSecret)

	return r
}
