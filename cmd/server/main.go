package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/guillomef06/activity-tracker/internal/auth"
	"github.com/guillomef06/activity-tracker/internal/config"
	"github.com/guillomef06/activity-tracker/internal/database"
	"github.com/guillomef06/activity-tracker/internal/handlers"
	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/repository"
	"github.com/guillomef06/activity-tracker/internal/scoring"
)

var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level)
	defer logger.L.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := database.Connect(ctx, cfg.Database.URL)
	cancel()
	if err != nil {
		logger.L.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	alliances := repository.NewAllianceRepository(pool)
	invitations := repository.NewInvitationRepository(pool)
	rules := repository.NewRuleRepository(pool)
	engine := scoring.NewEngine(rules)

	router := buildRouter(cfg, pool, jwtService, alliances, invitations, rules, engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.L.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("version", Version),
			zap.Bool("demo_mode", cfg.DemoMode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.L.Info("server exited")
}

func buildRouter(
	cfg *config.Config,
	pool *pgxpool.Pool,
	jwtService *auth.JWTService,
	alliances *repository.AllianceRepository,
	invitations *repository.InvitationRepository,
	rules *repository.RuleRepository,
	engine *scoring.Engine,
) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context(), pool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "version": Version})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": Version})
	})

	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version, "service": "activity-tracker"})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Alliance Activity Tracker API",
			"version": Version,
		})
	})

	api := r.Group("/api", middleware.Database(pool), middleware.RequireDB())

	// Public: account creation and token validation happen before auth.
	api.POST("/auth/login", handlers.Login(jwtService))
	api.POST("/auth/register", handlers.RegisterAdmin(jwtService, alliances))
	api.POST("/auth/join", handlers.Join(jwtService, invitations))
	api.GET("/invitations/validate", handlers.ValidateInvitation(invitations, alliances))

	authed := api.Group("", middleware.RequireAuth(jwtService))
	authed.GET("/users/me", handlers.GetCurrentUser)
	authed.PUT("/users/me/preferences", handlers.UpdatePreferences)

	// Alliance-scoped routes. Demo mode only blocks writes, so read routes
	// stay usable on the public demo instance.
	alliance := authed.Group("", middleware.RequireAlliance(), middleware.DemoMode(cfg.DemoMode))
	alliance.GET("/activities", handlers.ListActivities)
	alliance.POST("/activities", handlers.CreateActivity(engine))
	alliance.GET("/scores", handlers.GetScores(time.Now))
	alliance.GET("/users", handlers.ListUsers)
	alliance.GET("/users/:id", handlers.GetUser)
	alliance.GET("/activity-types", handlers.ListActivityTypes)
	alliance.GET("/weeks", handlers.ListWeekOptions)
	alliance.GET("/alliance", handlers.GetAlliance(alliances))

	admin := alliance.Group("", middleware.RequireAdmin())
	admin.PUT("/alliance", handlers.UpdateAlliance(alliances))
	admin.GET("/point-rules", handlers.ListRules(rules))
	admin.POST("/point-rules", handlers.CreateRule(rules, engine))
	admin.PUT("/point-rules/:id", handlers.UpdateRule(rules, engine))
	admin.DELETE("/point-rules/:id", handlers.DeleteRule(engine))
	admin.POST("/invitations", handlers.CreateInvitation(invitations))
	admin.GET("/invitations", handlers.ListInvitations(invitations))
	admin.DELETE("/invitations/:id", handlers.RevokeInvitation(invitations))
	admin.POST("/members/:id/activities", handlers.CreateMemberActivity(engine))
	admin.PUT("/members/:id/role", handlers.UpdateMemberRole)
	admin.DELETE("/members/:id", handlers.RemoveMember)
	admin.DELETE("/activities", handlers.ResetActivities)

	super := authed.Group("/admin", middleware.RequireSuperAdmin())
	super.GET("/alliances", handlers.ListAlliances(alliances))

	return r
}
