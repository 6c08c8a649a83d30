package main

import (
	"regexp"
	"strings"
	"time"

	"speedrun/client"
	"speedrun/config"
	"speedrun/controller"
	"speedrun/docs"
	"speedrun/service"
	"speedrun/utils"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// @title           Speedrun Leaderboard API
// @version         1.0
// @description     Backend API for submitting, verifying and ranking speedruns.
// @contact.name    Speedrun maintainers

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	t := time.Now()

	cfg := config.Env()
	logger := config.NewLogger()
	defer logger.Sync()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	publisher, closePublisher := runPublisher(cfg, logger)
	defer closePublisher()
	services := service.NewServices(db, publisher, recordNotifier(cfg, logger), logger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Fatal("failed to set trusted proxies", zap.Error(err))
	}
	addLogger(r)
	addMetrics(r)
	addDocs(r)
	setCors(r)
	cacheDuration := time.Duration(cfg.LeaderboardCacheSeconds) * time.Second
	controller.SetRoutes(r, services, controller.PageCache{
		Store:   persistence.NewInMemoryStore(cacheDuration),
		Expires: cacheDuration,
	}, logger)
	logger.Info("server started", zap.Duration("startup", time.Since(t)), zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("failed to start server", zap.Error(err))
	}
}

func runPublisher(cfg *config.Config, logger *zap.Logger) (service.RunEventPublisher, func()) {
	if cfg.KafkaBroker == "" {
		logger.Info("no kafka broker configured, run events are not published")
		return client.NoopRunPublisher{}, func() {}
	}
	writer, err := config.GetRunEventWriter()
	if err != nil {
		logger.Warn("could not set up run event writer", zap.Error(err))
		return client.NoopRunPublisher{}, func() {}
	}
	publisher := client.NewAsyncRunPublisher(client.NewKafkaRunPublisher(writer), logger, 256)
	closeWriter := utils.Closer(writer)
	return publisher, func() {
		publisher.Close()
		closeWriter()
	}
}

func recordNotifier(cfg *config.Config, logger *zap.Logger) service.RecordNotifier {
	if cfg.DiscordBotToken == "" || cfg.DiscordRecordsChannelID == "" {
		logger.Info("discord is not configured, world records are not announced")
		return client.NoopNotifier{}
	}
	notifier, err := client.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordRecordsChannelID)
	if err != nil {
		logger.Warn("could not create discord session", zap.Error(err))
		return client.NoopNotifier{}
	}
	return notifier
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/metrics"},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	uuidRe := regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		url = uuidRe.ReplaceAllString(url, "?")
		return strings.TrimPrefix(url, "/api")
	}
	p.MetricsPath = "/api/metrics"
	p.Use(r)
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func setCors(r *gin.Engine) {
	corsConfigGetOptions := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	corsConfigOtherMethods := cors.Config{
		AllowOrigins: []string{
			"http://localhost",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			// preflights are answered with the policy of the method they announce
			requestedMethod := c.GetHeader("Access-Control-Request-Method")
			if requestedMethod == "GET" || requestedMethod == "OPTIONS" {
				cors.New(corsConfigGetOptions)(c)
			} else {
				cors.New(corsConfigOtherMethods)(c)
			}
			c.AbortWithStatus(204)
			return
		}

		if c.Request.Method == "GET" {
			cors.New(corsConfigGetOptions)(c)
		} else {
			cors.New(corsConfigOtherMethods)(c)
		}
	})
}
