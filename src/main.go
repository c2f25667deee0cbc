package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"ticketing/src/boot"
	"ticketing/src/config"
	"ticketing/src/middlewares"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const apiPrefix string = "/api/v1"

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.RequestID)
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine, enabled bool) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if enabled {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.IsProd() {
		cc := cors.DefaultConfig()
		cc.AllowAllOrigins = true
		cc.AllowHeaders = append(cc.AllowHeaders, middlewares.AdminSecretHeader, middlewares.RequestIDHeader)
		return cors.New(cc)
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"}
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", middlewares.AdminSecretHeader, middlewares.RequestIDHeader)
	cc.ExposeHeaders = []string{middlewares.RequestIDHeader}
	cc.AllowOriginFunc = func(origin string) bool {
		if cfg.AppHost == "" {
			return false
		}
		match, _ := regexp.MatchString("^"+regexp.QuoteMeta(cfg.AppHost)+"$", origin)
		return match
	}
	cc.AllowAllOrigins = false
	return cors.New(cc)
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine, svc *boot.Services) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	categoryHandlers(apiv1, svc.Catalog)
	eventHandlers(apiv1, svc.Catalog)
	purchaseHandlers(apiv1, svc.Purchases, svc.History)
	return apiv1
}

func adminRoutes(g *gin.Engine, secret string, svc *boot.Services) *gin.RouterGroup {
	admin := g.Group(apiPrefix)
	admin.Use(middlewares.AdminSecret(secret))
	categoryAdminHandlers(admin, svc.Catalog)
	eventAdminHandlers(admin, svc.Catalog)
	historyAdminHandlers(admin, svc.History)
	return admin
}

func initLogger(cfg *config.Config) {
	logDir := cfg.LogDir
	if !path.IsAbs(logDir) {
		cwd, _ := os.Getwd()
		logDir = path.Join(cwd, logDir)
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("Error creating log directory: %s\n", err.Error())
		return
	}
	if !cfg.IsProd() {
		gin.ForceConsoleColor()
	}

	gin.DefaultWriter = io.MultiWriter(&lumberjack.Logger{
		Filename:   path.Join(logDir, "api.log"),
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}, os.Stdout)
	log.SetOutput(io.MultiWriter(&lumberjack.Logger{
		Filename:   path.Join(logDir, "server.log"),
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}, os.Stderr))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s\n", err.Error())
	}
	initLogger(cfg)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := boot.InitDb(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %s\n", err.Error())
	}
	notifier, err := boot.InitNotifier(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Error initializing notifier: %s\n", err.Error())
	}
	svc := boot.InitServices(db, notifier, cfg)

	router := setupRouter()
	router.Use(corsMiddleware(cfg))
	router = maintenanceModeMiddleware(router, cfg.MaintenanceMode)

	publicRoutes(router, svc)
	adminRoutes(router, cfg.AdminSecret, svc)

	log.Printf("Listening on %s (%s)\n", cfg.Addr(), cfg.APIEnv)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Server stopped: %s\n", err.Error())
	}
}
