package main

import (
	"log"

	_ "github.com/hammad535/task-manager/docs"
	"github.com/hammad535/task-manager/internal/config"
	"github.com/hammad535/task-manager/internal/server"
)

// @title           Task Manager API
// @version         1.0
// @description     API for managing boards, groups, items, sub-items, teams and recurring tasks.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
