package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/content"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
)

// Page is the JSON model served for a named route
type Page struct {
	Name          string       `json:"page"`
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
	Data          interface{}  `json:"data,omitempty"`
}

func page(c *gin.Context, name string, data interface{}) Page {
	p := Page{Name: name, Data: data}
	if u, ok := currentUser(c); ok {
		p.Authenticated = true
		p.User = &u
	}
	return p
}

func (s *Server) homePage(c *gin.Context) {
	home, err := s.journal.Home(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, page(c, "home", home))
}

func (s *Server) authPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, page(c, name, nil))
	}
}

func (s *Server) resourcesPage(c *gin.Context) {
	c.JSON(http.StatusOK, page(c, "resources", gin.H{"sections": content.Resources()}))
}

func (s *Server) calendarPage(c *gin.Context) {
	month, err := s.journal.Calendar(c.Request.Context(), userID(c), c.Query("month"))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, page(c, "calendar", month))
}

func (s *Server) dashboardPage(c *gin.Context) {
	summary, err := s.journal.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, page(c, "dashboard", summary))
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.Validation("%s must be a non-negative integer", key)
	}
	return n, nil
}

func nonNil(entries []models.HistoryEntry) []models.HistoryEntry {
	if entries == nil {
		return []models.HistoryEntry{}
	}
	return entries
}
