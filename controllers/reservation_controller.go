package controllers

import (
	"net/http"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(s *services.ReservationService) *ReservationController {
	return &ReservationController{Service: s}
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.Service.GetAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	reservation, err := rc.Service.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) GetReservationByGRC(c *gin.Context) {
	reservation, err := rc.Service.GetByGRC(c.Param("grcNo"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// CreateReservation binds the reservation payload directly onto the model;
// identifiers and timestamps are minted server-side regardless of what the
// client sent.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var input models.Reservation
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	created, err := rc.Service.Create(&input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var patch services.UpdateReservationInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	updated, err := rc.Service.Update(id, patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

type cancelPayload struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"`
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var payload cancelPayload
	_ = c.ShouldBindJSON(&payload)

	cancelled, err := rc.Service.Cancel(id, payload.Reason, payload.CancelledBy)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cancelled)
}

func (rc *ReservationController) MarkNoShow(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	reservation, err := rc.Service.MarkNoShow(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type linkBookingPayload struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

func (rc *ReservationController) LinkToBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var payload linkBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bookingId is required")
		return
	}
	reservation, err := rc.Service.LinkToBooking(id, payload.BookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := rc.Service.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "reservation deleted"})
}
