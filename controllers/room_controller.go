package controllers

import (
	"net/http"
	"time"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Service *services.RoomService
}

func NewRoomController(s *services.RoomService) *RoomController {
	return &RoomController{Service: s}
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	if categoryID := queryUint(c, "categoryId"); categoryID != 0 {
		rooms, err := rc.Service.GetByCategory(categoryID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, rooms)
		return
	}

	rooms, err := rc.Service.GetAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetAvailableRooms groups available rooms per category for the room picker.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	grouped, err := rc.Service.AvailableByCategory()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, grouped)
}

func (rc *RoomController) GetRoomsByCategory(c *gin.Context) {
	categoryID, err := parseID(c, "categoryId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	rooms, err := rc.Service.GetByCategory(categoryID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	room, err := rc.Service.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CheckRoomAvailability answers whether the room is free for the whole
// requested window: no held date in the calendar and no booked-till date at
// or past check-in.
func (rc *RoomController) CheckRoomAvailability(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	checkIn, err := time.Parse(utils.DayFormat, c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse(utils.DayFormat, c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be YYYY-MM-DD")
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be after checkIn")
		return
	}

	free, err := rc.Service.IsRoomFree(id, checkIn, checkOut)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roomId": id, "available": free})
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := rc.Service.Create(&room); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	room, err := rc.Service.Update(id, patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := rc.Service.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}
