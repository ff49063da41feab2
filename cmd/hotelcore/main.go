package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Leganyst/hotel-booking-platform/internal/config"
	"github.com/Leganyst/hotel-booking-platform/internal/db"
	handlers "github.com/Leganyst/hotel-booking-platform/internal/http/handler"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/obs"
	"github.com/Leganyst/hotel-booking-platform/internal/repository"
	"github.com/Leganyst/hotel-booking-platform/internal/service"
)

func main() {
	// 1. Загружаем .env (если есть) и конфиги.
	_ = godotenv.Load()

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	httpCfg := config.LoadHTTPConfig()
	authCfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("load auth config: %v", err)
	}

	logger := obs.NewLogger(httpCfg.Env)

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	roomRepo := repository.NewGormRoomRepository(gormDB)
	roomTypeRepo := repository.NewGormRoomTypeRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	paymentRepo := repository.NewGormPaymentRepository(gormDB)
	tokenRepo := repository.NewGormRefreshTokenRepository(gormDB)

	// 5. Сервисы.
	availabilitySvc := service.NewAvailabilityService(roomRepo)
	roomSvc := service.NewRoomService(roomRepo, roomTypeRepo)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo)
	authSvc := service.NewAuthService(userRepo, tokenRepo, *authCfg)

	// Чистим истёкшие refresh-токены, накопившиеся между рестартами.
	if purged, err := authSvc.PurgeExpired(context.Background()); err != nil {
		logger.Error("purge expired tokens", "err", err)
	} else if purged > 0 {
		logger.Info("purged expired refresh tokens", "count", purged)
	}

	// 6. HTTP-сервер.
	router := handlers.NewRouter(
		httpCfg,
		authSvc,
		handlers.NewAuthHandler(authSvc),
		handlers.NewRoomHandler(roomSvc, availabilitySvc),
		handlers.NewBookingHandler(bookingSvc),
		handlers.NewPaymentHandler(paymentSvc),
	)

	srv := &http.Server{
		Addr:    httpCfg.Addr,
		Handler: router,
	}

	logger.Info("hotel core listening", "addr", httpCfg.Addr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
