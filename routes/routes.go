package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk-backend/controllers"
	"frontdesk-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances onto the API surface.
func SetupRouter(
	ac *controllers.AuthController,
	cc *controllers.CategoryController,
	roc *controllers.RoomController,
	rsc *controllers.ReservationController,
	bc *controllers.BookingController,
	gc *controllers.GuestController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", cc.GetCategories)
			categories.GET("/:id", cc.GetCategory)
			categories.POST("", cc.CreateCategory)
			categories.PATCH("/:id", cc.UpdateCategory)
			categories.DELETE("/:id", cc.DeleteCategory)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roc.GetRooms)

			// must be registered before /:id
			rooms.GET("/available", roc.GetAvailableRooms)
			rooms.GET("/category/:categoryId", roc.GetRoomsByCategory)

			rooms.GET("/:id", roc.GetRoom)
			rooms.GET("/:id/availability", roc.CheckRoomAvailability)
			rooms.POST("", roc.CreateRoom)
			rooms.PATCH("/:id", roc.UpdateRoom)
			rooms.PUT("/:id", roc.UpdateRoom)
			rooms.DELETE("/:id", roc.DeleteRoom)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rsc.GetReservations)
			reservations.GET("/grc/:grcNo", rsc.GetReservationByGRC)
			reservations.GET("/:id", rsc.GetReservation)
			reservations.POST("", rsc.CreateReservation)
			reservations.PATCH("/:id", rsc.UpdateReservation)
			reservations.PUT("/:id", rsc.UpdateReservation)
			reservations.PATCH("/:id/cancel", rsc.CancelReservation)
			reservations.PATCH("/:id/no-show", rsc.MarkNoShow)
			reservations.PATCH("/:id/link-booking", rsc.LinkToBooking)
			reservations.DELETE("/:id", rsc.DeleteReservation)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.GET("/grc/:grcNo", bc.GetBookingByGRC)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("", bc.CreateBookings)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.POST("/:id/extend", bc.ExtendBooking)
			bookings.POST("/:id/checkout", bc.CheckoutBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
			bookings.DELETE("/:id/permanent", bc.HardDeleteBooking)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.POST("/upsert", gc.UpsertGuest)
			guests.POST("/add-visit", gc.RecordVisit)
			guests.GET("/:grcNo", gc.GetGuestByGRC)
		}
	}

	return r
}
