package controllers

import (
	"net/http"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Service *services.GuestService
}

func NewGuestController(s *services.GuestService) *GuestController {
	return &GuestController{Service: s}
}

func (gc *GuestController) GetGuests(c *gin.Context) {
	q := services.ListGuestsQuery{
		Name:   c.Query("name"),
		Email:  c.Query("email"),
		Phone:  c.Query("phone"),
		IDType: c.Query("idType"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}
	guests, total, err := gc.Service.List(q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    guests,
		"total":   total,
		"page":    q.Page,
		"limit":   q.Limit,
	})
}

func (gc *GuestController) GetGuestByGRC(c *gin.Context) {
	guest, err := gc.Service.GetByGRC(c.Param("grcNo"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

type upsertGuestPayload struct {
	Phone           string                 `json:"phone"`
	GRCNo           string                 `json:"grcNo"`
	BookingRefNo    string                 `json:"bookingRefNo"`
	GuestDetails    models.GuestDetails    `json:"guestDetails"`
	ContactDetails  models.ContactDetails  `json:"contactDetails"`
	IdentityDetails models.IdentityDetails `json:"identityDetails"`
}

// UpsertGuest creates or merges a profile directly, outside any stay. Same
// identity rules as the lifecycle-triggered upserts.
func (gc *GuestController) UpsertGuest(c *gin.Context) {
	var payload upsertGuestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	key := services.GuestIdentity{
		Phone:        payload.Phone,
		GRCNo:        payload.GRCNo,
		BookingRefNo: payload.BookingRefNo,
	}
	if err := gc.Service.UpsertGuestOnStay(key,
		payload.GuestDetails, payload.ContactDetails, payload.IdentityDetails); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "guest profile saved"})
}

type recordVisitPayload struct {
	Phone        string `json:"phone"`
	GRCNo        string `json:"grcNo"`
	BookingRefNo string `json:"bookingRefNo"`
}

// RecordVisit bumps the visit counter for a returning guest without touching
// the rest of the profile.
func (gc *GuestController) RecordVisit(c *gin.Context) {
	var payload recordVisitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	guest, err := gc.Service.RecordVisit(services.GuestIdentity{
		Phone:        payload.Phone,
		GRCNo:        payload.GRCNo,
		BookingRefNo: payload.BookingRefNo,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}
