package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Leganyst/hotel-booking-platform/internal/config"
	"github.com/Leganyst/hotel-booking-platform/internal/http/middleware"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/service"
)

// NewRouter собирает все маршруты REST API.
func NewRouter(
	cfg *config.HTTPConfig,
	authSvc *service.AuthService,
	authH *AuthHandler,
	roomH *RoomHandler,
	bookingH *BookingHandler,
	paymentH *PaymentHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	auth := middleware.Auth(authSvc)
	staff := middleware.RequireRole(string(model.UserRoleStaff), string(model.UserRoleAdmin))
	admin := middleware.RequireRole(string(model.UserRoleAdmin))

	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)
	r.POST("/auth/refresh", authH.Refresh)
	r.POST("/auth/logout", auth, authH.Logout)
	r.PATCH("/users/:id/role", auth, admin, authH.SetRole)

	// Поиск и каталог доступны без авторизации.
	r.GET("/rooms/search", roomH.Search)
	r.GET("/rooms/available", roomH.Search) // легаси-алиас
	r.GET("/rooms", roomH.List)
	r.GET("/rooms/:id", roomH.Get)
	r.GET("/room-types", roomH.ListRoomTypes)

	r.POST("/rooms", auth, staff, roomH.Create)
	r.PATCH("/rooms/:id", auth, staff, roomH.Update)
	r.PATCH("/rooms/:id/status", auth, staff, roomH.SetStatus)
	r.DELETE("/rooms/:id", auth, staff, roomH.Delete)
	r.GET("/rooms/:id/bookings", auth, staff, bookingH.ListByRoom)
	r.POST("/room-types", auth, staff, roomH.CreateRoomType)

	r.POST("/bookings", auth, bookingH.Create)
	r.GET("/bookings/:id", auth, bookingH.Get)
	r.GET("/me/bookings", auth, bookingH.MyBookings)
	r.POST("/bookings/:id/cancel", auth, bookingH.Cancel)
	r.POST("/bookings/:id/confirm", auth, staff, bookingH.Confirm)
	r.POST("/bookings/:id/complete", auth, staff, bookingH.Complete)

	r.POST("/bookings/:id/payments", auth, paymentH.Charge)
	r.GET("/bookings/:id/payments", auth, paymentH.ListByBooking)
	r.POST("/payments/:id/refund", auth, staff, paymentH.Refund)

	return r
}
