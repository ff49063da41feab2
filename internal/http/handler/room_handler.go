package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/Leganyst/hotel-booking-platform/internal/service"
)

const dateLayout = "2006-01-02"

type RoomHandler struct {
	rooms        *service.RoomService
	availability *service.AvailabilityService
}

func NewRoomHandler(rooms *service.RoomService, availability *service.AvailabilityService) *RoomHandler {
	return &RoomHandler{rooms: rooms, availability: availability}
}

// Search — GET /rooms/search (и легаси-алиас GET /rooms/available).
// Обязательные параметры: checkInDate, checkOutDate (формат 2006-01-02).
func (h *RoomHandler) Search(c *gin.Context) {
	checkIn, err := time.Parse(dateLayout, c.Query("checkInDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkInDate is required in format " + dateLayout})
		return
	}
	checkOut, err := time.Parse(dateLayout, c.Query("checkOutDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOutDate is required in format " + dateLayout})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOutDate must be after checkInDate"})
		return
	}

	params := service.SearchParams{
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		RoomType:  strings.TrimSpace(c.Query("roomType")),
		Amenities: parseAmenities(c),
		SortBy:    strings.TrimSpace(c.Query("sortBy")),
		SortDesc:  strings.EqualFold(c.Query("sortOrder"), "DESC"),
	}

	if v := c.Query("maxGuests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxGuests must be an integer"})
			return
		}
		params.Guests = n
	}
	var ok bool
	if params.MinPrice, ok = parsePrice(c, "minPrice"); !ok {
		return
	}
	if params.MaxPrice, ok = parsePrice(c, "maxPrice"); !ok {
		return
	}

	rooms, err := h.availability.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// amenities: повторяющийся query-параметр либо одна строка с JSON-массивом.
func parseAmenities(c *gin.Context) []string {
	values := c.QueryArray("amenities")
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var tags []string
		if err := json.Unmarshal([]byte(values[0]), &tags); err == nil {
			return tags
		}
	}
	return values
}

func parsePrice(c *gin.Context, name string) (*float64, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a number"})
		return nil, false
	}
	return &f, true
}

type createRoomIn struct {
	RoomNumber    string         `json:"roomNumber" binding:"required"`
	Type          string         `json:"type" binding:"required"`
	PricePerNight float64        `json:"pricePerNight"`
	MaxGuests     int            `json:"maxGuests" binding:"required"`
	Description   string         `json:"description"`
	Amenities     []string       `json:"amenities"`
	Photos        datatypes.JSON `json:"photos"`
}

func (h *RoomHandler) Create(c *gin.Context) {
	var in createRoomIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	room, err := h.rooms.Create(c.Request.Context(), service.CreateRoomParams{
		RoomNumber:    in.RoomNumber,
		Type:          in.Type,
		PricePerNight: in.PricePerNight,
		MaxGuests:     in.MaxGuests,
		Description:   in.Description,
		Amenities:     in.Amenities,
		Photos:        in.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	room, err := h.rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) List(c *gin.Context) {
	limit, offset := parsePage(c)
	rooms, total, err := h.rooms.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rooms, "total": total})
}

type updateRoomIn struct {
	PricePerNight *float64       `json:"pricePerNight"`
	MaxGuests     *int           `json:"maxGuests"`
	Description   *string        `json:"description"`
	Amenities     []string       `json:"amenities"`
	Photos        datatypes.JSON `json:"photos"`
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in updateRoomIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	room, err := h.rooms.Update(c.Request.Context(), id, service.UpdateRoomParams{
		PricePerNight: in.PricePerNight,
		MaxGuests:     in.MaxGuests,
		Description:   in.Description,
		Amenities:     in.Amenities,
		Photos:        in.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type setStatusIn struct {
	Status string `json:"status" binding:"required"`
}

func (h *RoomHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in setStatusIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := h.rooms.SetStatus(c.Request.Context(), id, in.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": in.Status})
}

func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createRoomTypeIn struct {
	Code        string         `json:"code" binding:"required"`
	DisplayName string         `json:"displayName" binding:"required"`
	Description string         `json:"description"`
	BaseRate    float64        `json:"baseRate"`
	Features    datatypes.JSON `json:"features"`
}

func (h *RoomHandler) CreateRoomType(c *gin.Context) {
	var in createRoomTypeIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	info, err := h.rooms.CreateRoomType(c.Request.Context(), service.CreateRoomTypeParams{
		Code:        in.Code,
		DisplayName: in.DisplayName,
		Description: in.Description,
		BaseRate:    in.BaseRate,
		Features:    in.Features,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *RoomHandler) ListRoomTypes(c *gin.Context) {
	infos, err := h.rooms.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}
