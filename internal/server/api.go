package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/content"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
)

type credentialsInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequestInput struct {
	Email string `json:"email" binding:"required"`
}

type resetInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type entryInput struct {
	PromptID string      `json:"prompt_id"`
	Content  string      `json:"content"`
	Mood     models.Mood `json:"mood"`
}

func (s *Server) register(c *gin.Context) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	session, err := s.auth.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		fail(c, err, "registration failed")
		return
	}
	s.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusCreated, session)
}

func (s *Server) login(c *gin.Context) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	session, err := s.auth.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		fail(c, err, "sign in failed")
		return
	}
	s.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, session)
}

// logout clears the session cookie. Tokens are stateless, so bearer
// clients just discard theirs.
func (s *Server) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookieName, "", -1, "/", "", s.cfg.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (s *Server) requestReset(c *gin.Context) {
	var input resetRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	token, err := s.auth.RequestPasswordReset(c.Request.Context(), input.Email)
	if err != nil {
		fail(c, err, "could not start password reset")
		return
	}
	resp := gin.H{"message": "if the account exists, a reset token has been issued"}
	if token != "" {
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) resetPassword(c *gin.Context) {
	var input resetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.auth.ResetPassword(c.Request.Context(), input.Token, input.Password); err != nil {
		fail(c, err, "could not reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (s *Server) me(c *gin.Context) {
	u, _ := currentUser(c)
	c.JSON(http.StatusOK, u)
}

func (s *Server) listPrompts(c *gin.Context) {
	prompts, err := s.journal.Prompts(c.Request.Context())
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

func (s *Server) listResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": content.Resources()})
}

func (s *Server) quote(c *gin.Context) {
	c.JSON(http.StatusOK, content.QuoteOfDay(s.journal.Now()))
}

func (s *Server) todayEntries(c *gin.Context) {
	home, err := s.journal.Home(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": home.Today, "entries": home.TodayEntries})
}

func (s *Server) history(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		fail(c, err, "")
		return
	}
	entries, err := s.journal.History(c.Request.Context(), userID(c), limit)
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": nonNil(entries)})
}

func (s *Server) search(c *gin.Context) {
	query := c.Query("q")
	entries, err := s.journal.Search(c.Request.Context(), userID(c), query)
	if err != nil {
		fail(c, err, constants.BannerSearchFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "entries": nonNil(entries)})
}

func (s *Server) getEntry(c *gin.Context) {
	entry, err := s.journal.Entry(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) updateEntry(c *gin.Context) {
	var input entryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	entry, err := s.journal.UpdateEntry(c.Request.Context(), userID(c), c.Param("id"), input.Content, input.Mood)
	if err != nil {
		fail(c, err, constants.BannerUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "message": constants.BannerEntryUpdated})
}

func (s *Server) submitEntry(c *gin.Context) {
	var input entryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.journal.Submit(c.Request.Context(), userID(c), journal.Submission{
		PromptID: input.PromptID,
		Content:  input.Content,
		Mood:     input.Mood,
	})
	if err != nil {
		fail(c, err, constants.BannerSubmitFailed)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"entry":   res.Entry,
		"created": res.Created,
		"streak":  res.Streak,
		"message": constants.BannerEntrySaved,
	})
}

func (s *Server) streak(c *gin.Context) {
	info, err := s.journal.Streak(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) dashboard(c *gin.Context) {
	summary, err := s.journal.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) calendar(c *gin.Context) {
	month, err := s.journal.Calendar(c.Request.Context(), userID(c), c.Query("month"))
	if err != nil {
		fail(c, err, constants.BannerFetchFailed)
		return
	}
	c.JSON(http.StatusOK, month)
}

func (s *Server) setSessionCookie(c *gin.Context, token string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if maxAge <= 0 {
		maxAge = int(constants.DefaultTokenTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookieName, token, maxAge, "/", "", s.cfg.SecureCookie, true)
}
