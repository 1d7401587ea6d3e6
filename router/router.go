package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/controllers"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/middlewares"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs from the running service.
type Deps struct {
	DB         *gorm.DB
	Board      *hub.Hub
	Settings   *services.SettingsService
	Slots      *services.SlotGenerator
	Bookings   *services.BookingService
	CORSOrigin string

	// PublicLimit and BookLimit are requests per hour per IP. Zero means the defaults.
	PublicLimit int
	BookLimit   int
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))

	if deps.PublicLimit <= 0 {
		deps.PublicLimit = 10
	}
	if deps.BookLimit <= 0 {
		deps.BookLimit = 5
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	publicCtrl := controllers.NewPublicBookingController(deps.Slots, deps.Bookings)
	bookingCtrl := controllers.NewBookingController(deps.Bookings)
	tableCtrl := controllers.NewTableController(deps.DB, deps.Board)
	shiftCtrl := controllers.NewShiftController(deps.DB, deps.Board)
	settingsCtrl := controllers.NewSettingsController(deps.Settings, deps.Board)
	userCtrl := controllers.NewUserController(deps.DB)

	// Public booking API
	public := r.Group("/api/v1")
	public.Use(middlewares.NewRateLimiter(deps.PublicLimit, time.Hour).RateLimit())
	{
		public.GET("/availability", publicCtrl.Availability)
		public.POST("/book", middlewares.NewRateLimiter(deps.BookLimit, time.Hour).RateLimit(), publicCtrl.Book)
		public.POST("/confirm", publicCtrl.Confirm)
		public.POST("/cancel", publicCtrl.Cancel)
		public.GET("/booking/:token", publicCtrl.GetBooking)
	}

	r.POST("/api/v1/admin/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
	r.GET("/api/v1/admin/ws", middlewares.WebSocketAuthMiddleware(), controllers.BoardHandler(deps.Board))

	admin := r.Group("/api/v1/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin, models.RoleStaff))
	{
		admin.GET("/profile", userCtrl.GetProfile)

		bookings := admin.Group("/bookings")
		{
			bookings.GET("", bookingCtrl.ListBookings)
			bookings.GET("/stats", bookingCtrl.Stats)
			bookings.GET("/export", bookingCtrl.ExportBookings)
			bookings.POST("", bookingCtrl.CreateBooking)
			bookings.GET("/:booking_id", bookingCtrl.GetBooking)
			bookings.PUT("/:booking_id/confirm", bookingCtrl.ConfirmBooking)
			bookings.PUT("/:booking_id/cancel", bookingCtrl.CancelBooking)
			bookings.PUT("/:booking_id/status", bookingCtrl.UpdateStatus)
			bookings.DELETE("/:booking_id", bookingCtrl.DeleteBooking)
		}

		tables := admin.Group("/tables")
		{
			tables.GET("", tableCtrl.GetAllTables)
			tables.POST("", tableCtrl.CreateTable)
			tables.PUT("/:table_id", tableCtrl.UpdateTable)
			tables.DELETE("/:table_id", tableCtrl.DeleteTable)
		}

		shifts := admin.Group("/shifts")
		{
			shifts.GET("", shiftCtrl.GetAllShifts)
			shifts.POST("", shiftCtrl.CreateShift)
			shifts.PUT("/:shift_id", shiftCtrl.UpdateShift)
			shifts.DELETE("/:shift_id", shiftCtrl.DeleteShift)
		}

		settings := admin.Group("/settings", middlewares.RequireRole(models.RoleAdmin))
		{
			settings.GET("", settingsCtrl.GetSettings)
			settings.PUT("", settingsCtrl.UpdateSettings)
		}

		users := admin.Group("/users", middlewares.RequireRole(models.RoleAdmin))
		{
			users.GET("", userCtrl.GetAllUsers)
			users.POST("", userCtrl.Register)
		}
	}

	return r
}
