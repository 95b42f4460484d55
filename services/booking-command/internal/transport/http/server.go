package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/domain"
	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/service"
)

type Server struct {
	svc            *service.BookingSvc
	internalAPIKey string
}

func NewServer(svc *service.BookingSvc, internalAPIKey string) *Server {
	return &Server{svc: svc, internalAPIKey: internalAPIKey}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "booking-command"})
	})

	v1 := r.Group("/api/v1/bookings")
	{
		v1.POST("", RequireAuth(), s.create)
		v1.DELETE("/:id", RequireAuth(), s.cancel)
		v1.GET("/internal/bookings", s.export)
	}
	return r
}

type bookingResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// POST /api/v1/bookings
func (s *Server) create(c *gin.Context) {
	var in struct {
		ClassroomID string `json:"classroom_id" binding:"required"`
		StartTime   string `json:"start_time" binding:"required"` // RFC3339
		EndTime     string `json:"end_time" binding:"required"`   // RFC3339
		Subject     string `json:"subject" binding:"required,min=2,max=255"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, _ := c.Get("sub")
	userID, _ := sub.(string)

	b, err := s.svc.Create(c.Request.Context(), userID, in.ClassroomID, in.StartTime, in.EndTime, in.Subject)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingResponse{ID: b.ID, Status: b.Status, Message: "Booking created successfully"})
}

// DELETE /api/v1/bookings/:id
func (s *Server) cancel(c *gin.Context) {
	sub, _ := c.Get("sub")
	userID, _ := sub.(string)
	roleV, _ := c.Get("role")
	role, _ := roleV.(string)

	b, err := s.svc.Cancel(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingResponse{ID: b.ID, Status: b.Status, Message: "Booking canceled successfully"})
}

// GET /api/v1/bookings/internal/bookings?limit&offset
// Read-model bootstrap feed, guarded by a shared key rather than user auth.
func (s *Server) export(c *gin.Context) {
	if s.internalAPIKey != "" && c.GetHeader("X-Internal-API-Key") != s.internalAPIKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid internal key"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.svc.Export(c.Request.Context(), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrClassroomNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrClassroomUnavailable),
		errors.Is(err, domain.ErrScheduleConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTimetableUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrTimetableUnavailable.Error()})
	default:
		log.Printf("[booking-command] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
