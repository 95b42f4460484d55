package http

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/cache"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/events"
)

// Server reads purely from the cache; it never touches the write-side
// store or the broker.
type Server struct {
	cache *cache.Bookings
}

func NewServer(c *cache.Bookings) *Server {
	return &Server{cache: c}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "booking-query"})
	})

	q := r.Group("/api/v1/queries")
	{
		q.GET("/bookings/:id", s.get)
		q.GET("/bookings", s.list)
	}
	return r
}

// GET /api/v1/queries/bookings/:id
func (s *Server) get(c *gin.Context) {
	snap, err := s.cache.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found (or not yet synced)"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt booking cache entry"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GET /api/v1/queries/bookings?user_id&classroom_id&status&limit&offset
func (s *Server) list(c *gin.Context) {
	userID := c.Query("user_id")
	classroomID := c.Query("classroom_id")
	statusFilter := c.Query("status")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	ctx := c.Request.Context()
	var (
		ids []string
		err error
	)
	switch {
	case userID != "":
		ids, err = s.cache.IDsByUser(ctx, userID)
	case classroomID != "":
		ids, err = s.cache.IDsByClassroom(ctx, classroomID)
	default:
		ids, err = s.cache.AllIDs(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read index"})
		return
	}

	docs := make([]events.BookingSnapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := s.cache.Snapshot(ctx, id)
		if err != nil {
			// missing or corrupt entries never fail the whole listing
			continue
		}
		// only the user index was consulted; narrow by classroom here
		if userID != "" && classroomID != "" && snap.ClassroomID != classroomID {
			continue
		}
		if statusFilter != "" && !strings.EqualFold(snap.Status, statusFilter) {
			continue
		}
		docs = append(docs, snap)
	}

	sort.Slice(docs, func(i, j int) bool {
		return startOf(docs[i]).Before(startOf(docs[j]))
	})

	total := len(docs)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "items": docs[offset:end]})
}

func startOf(snap events.BookingSnapshot) time.Time {
	t, err := time.Parse(time.RFC3339, snap.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
