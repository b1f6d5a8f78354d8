package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hammad535/task-manager/internal/activity"
	"github.com/hammad535/task-manager/internal/config"
	"github.com/hammad535/task-manager/internal/db"
	"github.com/hammad535/task-manager/internal/handler"
	"github.com/hammad535/task-manager/internal/middleware"
	"github.com/hammad535/task-manager/internal/recurring"
	"github.com/hammad535/task-manager/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine    *gin.Engine
	DB        *gorm.DB
	Config    *config.Config
	Scheduler *recurring.Scheduler
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to access DB connection: %w", err)
	}
	if err := db.Migrate(sqlDB, cfg.DBName); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	groupRepo := repository.NewGroupRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	subItemRepo := repository.NewSubItemRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	recurringRepo := repository.NewRecurringRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)

	activityLogger := activity.NewLogger(gormDB)

	// The recurring engine fires due rules; the scheduler drives it on
	// an interval.
	engine := recurring.NewEngine(gormDB, activityLogger)
	scheduler := recurring.NewScheduler(engine, cfg.RecurringInterval)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret)
	boardHandler := handler.NewBoardHandler(boardRepo, groupRepo, itemRepo, subItemRepo)
	groupHandler := handler.NewGroupHandler(groupRepo, boardRepo)
	itemHandler := handler.NewItemHandler(itemRepo, groupRepo, boardRepo, subItemRepo, activityRepo, recurringRepo, activityLogger)
	subItemHandler := handler.NewSubItemHandler(subItemRepo, itemRepo, activityLogger)
	teamHandler := handler.NewTeamHandler(teamRepo, itemRepo, activityLogger)
	myWorkHandler := handler.NewMyWorkHandler(itemRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok"}})
		})

		// Board routes
		api.POST("/boards", boardHandler.Create)
		api.GET("/boards", boardHandler.GetAll)
		api.GET("/boards/:id", boardHandler.GetByID)
		api.DELETE("/boards/:id", boardHandler.Delete)

		// Group routes
		api.GET("/boards/:id/groups", groupHandler.GetByBoard)
		api.POST("/groups", groupHandler.Create)
		api.PUT("/groups/:id", groupHandler.Update)
		api.DELETE("/groups/:id", groupHandler.Delete)

		// Item routes
		api.GET("/items", itemHandler.List)
		api.POST("/items", itemHandler.Create)
		api.GET("/items/:id", itemHandler.GetByID)
		api.PUT("/items/:id", itemHandler.Update)
		api.PATCH("/items/:id/timeline", itemHandler.UpdateTimeline)
		api.DELETE("/items/:id", itemHandler.Delete)
		api.POST("/items/:id/team", teamHandler.AssignToItem)
		api.GET("/items/:id/subitems", subItemHandler.GetByItem)

		// Sub-item routes
		api.POST("/subitems", subItemHandler.Create)
		api.GET("/subitems/:id", subItemHandler.GetByID)
		api.PUT("/subitems/:id", subItemHandler.Update)
		api.DELETE("/subitems/:id", subItemHandler.Delete)

		// Team routes
		api.POST("/teams", teamHandler.Create)
		api.GET("/teams", teamHandler.GetAll)
		api.GET("/teams/:id", teamHandler.GetByID)
		api.PUT("/teams/:id", teamHandler.Update)
		api.DELETE("/teams/:id", teamHandler.Delete)

		// My Work
		api.GET("/mywork", myWorkHandler.Get)

		// User directory
		api.GET("/users", userHandler.GetAll)
	}

	return &Server{
		Engine:    r,
		DB:        gormDB,
		Config:    cfg,
		Scheduler: scheduler,
	}, nil
}

func (s *Server) Run() {
	s.Scheduler.Start()

	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	s.Scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("✅ Server exited properly")
}
