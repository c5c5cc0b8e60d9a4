package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/hasher"
	"github.com/abezemskiy/immersilearn/internal/common/identity/tools/token"
	"github.com/abezemskiy/immersilearn/internal/server/identity/service"
	"github.com/abezemskiy/immersilearn/internal/server/logger"
	"github.com/abezemskiy/immersilearn/internal/server/storage/pg"

	"go.uber.org/zap"
)

const shutdownWaitPeriod = 20 * time.Second // для установки в контекст для реализаации graceful shutdown

func main() {
	err := parseVariables()
	if err != nil {
		log.Fatalf("failed to set global variables, %v", err)
	}

	// Инициализация логера
	if err := logger.Initialize(logLevel); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}

	ctx := context.Background()
	// создаем экземпляр хранилища pg
	stor, err := pg.NewStore(ctx, databaseDsn)
	if err != nil {
		log.Fatalf("Failed to create storage: %v\n", err)
	}
	defer stor.Close()

	// зависимости сервиса аутентификации передаются явно, глобального состояния нет
	h, err := hasher.New(bcryptCost, 0)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v\n", err)
	}
	issuer, err := token.NewIssuer(secretKey)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v\n", err)
	}
	svc, err := service.New(stor, h, issuer)
	if err != nil {
		log.Fatalf("Failed to create identity service: %v\n", err)
	}
	// ------------------------------------------------------------------------------

	run(ctx, Router(svc, stor, RouterOptions{AllowedOrigins: allowedOrigins, SecureCookie: secureCookie}))
}

// функция run запускает сервер и останавливает его по сигналу прерывания
func run(ctx context.Context, handler http.Handler) {
	logger.ServerLog.Info("Running immersilearn", zap.String("address", netAddr))

	// запускаю сам сервис с проверкой отмены контекста для реализации graceful shutdown--------------
	srv := &http.Server{
		Addr:              netAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Канал для получения сигнала прерывания
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Горутина для запуска сервера
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	// Блокирование до тех пор, пока не поступит сигнал о прерывании
	<-quit
	logger.ServerLog.Info("Shutting down server...", zap.String("address", netAddr))

	ctx, cancel := context.WithTimeout(ctx, shutdownWaitPeriod)
	defer cancel()

	// останавливаю сервер, чтобы он перестал принимать новые запросы
	if err := srv.Shutdown(ctx); err != nil {
		logger.ServerLog.Error("Stopping server error", zap.String("error", err.Error()))
		return
	}

	logger.ServerLog.Info("Shutdown the server gracefully", zap.String("address", netAddr))
}
