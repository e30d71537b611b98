package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/EgorLis/my-notes/internal/app"
)

// @title       my-notes API
// @version     1.0
// @description Минимальный блокнот: регистрация, сессии, один документ на пользователя.
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
