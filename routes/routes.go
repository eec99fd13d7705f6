package routes

import (
	"net/http"
	"time"

	"roomly/handlers"
	"roomly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the route table needs.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Reservation  *handlers.ReservationHandler
	Room         *handlers.RoomHandler
	Blackout     *handlers.BlackoutHandler
}

// RegisterAvailabilityRoutes registers the read-only availability queries.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/rooms/:roomID/slots", hb.Availability.GetDaySlotsHandler)
		api.GET("/rooms/:roomID/calendar", hb.Availability.GetCalendarHandler)
	}
}

// RegisterReservationRoutes registers the reservation write path.
func RegisterReservationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.POST("", hb.Reservation.CreateReservationHandler)
		api.POST("/:id/confirm", hb.Reservation.ConfirmReservationHandler)
		api.POST("/:id/cancel", hb.Reservation.CancelReservationHandler)
	}
}

// RegisterRoomRoutes registers room and blackout administration.
func RegisterRoomRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/rooms")
	{
		api.POST("", hb.Room.CreateRoomHandler)
		api.GET("", hb.Room.ListRoomsHandler)
		api.GET("/:roomID", hb.Room.GetRoomHandler)
		api.PUT("/:roomID/policy", hb.Room.UpdatePolicyHandler)
		api.DELETE("/:roomID", hb.Room.DeleteRoomHandler)

		api.POST("/:roomID/blackouts", hb.Blackout.CreateBlackoutHandler)
		api.GET("/:roomID/blackouts", hb.Blackout.ListBlackoutsHandler)
		api.DELETE("/:roomID/blackouts/:id", hb.Blackout.DeleteBlackoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterHealthRoute(r)
}
