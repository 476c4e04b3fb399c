package controllers

import (
	"encoding/json"
	"net/http"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Service *services.BookingService
}

func NewBookingController(s *services.BookingService) *BookingController {
	return &BookingController{Service: s}
}

// CreateBookings accepts either a single booking item or a batch wrapped in
// {"items": [...]}. Batch items commit one by one; the response reports the
// outcome per item so a mid-batch failure leaves no ambiguity about what
// went through.
func (bc *BookingController) CreateBookings(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not read request body")
		return
	}

	var batch struct {
		Items []services.BookingItem `json:"items"`
	}
	var items []services.BookingItem
	if err := json.Unmarshal(raw, &batch); err == nil && len(batch.Items) > 0 {
		items = batch.Items
	} else {
		var single services.BookingItem
		if err := json.Unmarshal(raw, &single); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		items = []services.BookingItem{single}
	}

	results, bookErr := bc.Service.BookRooms(items)
	if bookErr != nil {
		c.JSON(utils.ErrorStatus(bookErr), gin.H{
			"success": false,
			"error":   bookErr.Error(),
			"results": results,
		})
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, results)
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	q := services.ListBookingsQuery{
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 10),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		CategoryID:   queryUint(c, "categoryId"),
		GRCNo:        c.Query("grcNo"),
		BookingRefNo: c.Query("bookingRefNo"),
		All:          c.Query("all") == "true",
	}
	bookings, total, err := bc.Service.List(q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
		"total":   total,
		"page":    q.Page,
		"limit":   q.Limit,
	})
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	booking, err := bc.Service.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) GetBookingByGRC(c *gin.Context) {
	booking, err := bc.Service.GetByGRC(c.Param("grcNo"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var patch services.UpdateBookingInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	updated, err := bc.Service.Update(id, patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (bc *BookingController) ExtendBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var input services.ExtendBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "extendedCheckOut is required")
		return
	}
	booking, err := bc.Service.Extend(id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckoutBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	booking, err := bc.Service.Checkout(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking deactivates the booking and releases its room.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := bc.Service.SoftDelete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking deactivated"})
}

// HardDeleteBooking removes the record permanently. The room is left as is:
// callers still holding it must release it themselves.
func (bc *BookingController) HardDeleteBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := bc.Service.HardDelete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking permanently deleted"})
}
