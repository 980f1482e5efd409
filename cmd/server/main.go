package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/app"
)

// @title       Toolkit Service API
// @version     1.0
// @description Реестр тулкитов: загрузка файлов, метаданные, zip-архив на скачивание.
// @BasePath    /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
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
