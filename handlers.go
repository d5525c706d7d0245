package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"expenseit/pkg/extract"
	"expenseit/pkg/ocr"
	"expenseit/pkg/scan"

	"github.com/gin-gonic/gin"
)

// minSuggestQuery is the shortest query that produces merchant suggestions.
const minSuggestQuery = 2

type scanResponse struct {
	RequestID string `json:"request_id"`
	*scan.Result
	DisplayDate string `json:"display_date,omitempty"`
	CardNote    string `json:"card_note,omitempty"`
}

type extractResponse struct {
	Text        string         `json:"text"`
	Fields      []string       `json:"fields"`
	Record      extract.Record `json:"record"`
	DisplayDate string         `json:"display_date,omitempty"`
	CardNote    string         `json:"card_note,omitempty"`
}

func (s *server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		s.log.Warn().Str("username", req.Username).Msg("login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

// scanHandler runs the full pipeline on a multipart upload in the "file" field.
func (s *server) scanHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > s.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	prefs, err := s.formPreferences(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read upload failed"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.maxUpload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read upload failed"})
		return
	}

	id := requestID(c)
	res, err := s.scanner.Scan(c.Request.Context(), data, prefs, func(status string, progress float64) {
		s.log.Debug().Str("request_id", id).Str("status", status).Float64("progress", progress).Msg("ocr progress")
	})
	if err != nil {
		s.log.Warn().Err(err).Str("request_id", id).Str("file", file.Filename).Msg("scan failed")
		c.JSON(scanStatus(err), gin.H{"error": err.Error(), "request_id": id})
		return
	}
	c.JSON(http.StatusOK, scanResponse{
		RequestID:   id,
		Result:      res,
		DisplayDate: extract.FormatDateForDisplay(res.Record.Date, prefs.DateFormat),
		CardNote:    res.Record.CardNote(),
	})
}

func scanStatus(err error) int {
	switch {
	case errors.Is(err, scan.ErrNoText), errors.Is(err, scan.ErrNoFields):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ocr.ErrRecognition):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// formPreferences applies the optional form overrides to the stored preferences.
func (s *server) formPreferences(c *gin.Context) (extract.Preferences, error) {
	p := s.prefs.Get()
	if v := c.PostForm("date_format"); v != "" {
		p.DateFormat = extract.DateFormat(v)
	}
	if v := c.PostForm("default_currency"); v != "" {
		p.DefaultCurrency = v
	}
	if v := c.PostForm("auto_categorize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, errors.New("auto_categorize must be a boolean")
		}
		p.AutoCategorizeMerchants = b
	}
	return p, p.Validate()
}

func (s *server) extractHandler(c *gin.Context) {
	var req struct {
		Text        string               `json:"text" binding:"required"`
		Preferences *extract.Preferences `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefs := s.prefs.Get()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	if err := prefs.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := ocr.Normalize(req.Text)
	rec := extract.Extract(text, prefs)
	c.JSON(http.StatusOK, extractResponse{
		Text:        text,
		Fields:      rec.PopulatedFields(),
		Record:      rec,
		DisplayDate: extract.FormatDateForDisplay(rec.Date, prefs.DateFormat),
		CardNote:    rec.CardNote(),
	})
}

func (s *server) normalizeHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": ocr.Normalize(req.Text)})
}

func (s *server) suggestHandler(c *gin.Context) {
	q := c.Query("q")
	suggestions := []extract.Merchant{}
	if utf8.RuneCountInString(q) >= minSuggestQuery {
		suggestions = append(suggestions, extract.SuggestMerchants(q)...)
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *server) preferencesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.prefs.Get())
}
