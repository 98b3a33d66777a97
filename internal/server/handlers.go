package server

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Skufu/protocolrx/internal/recommend"
	"github.com/Skufu/protocolrx/internal/risk"
	"github.com/Skufu/protocolrx/internal/store"
)

const userIDHeader = "X-User-ID"

// profileRequest mirrors risk.Profile; AgeOver18 is a pointer so an omitted
// field is rejected rather than read as false.
type profileRequest struct {
	Goal        string   `json:"goal" binding:"required"`
	Medications []string `json:"medications"`
	Conditions  []string `json:"conditions"`
	Allergies   []string `json:"allergies"`
	AgeOver18   *bool    `json:"ageOver18" binding:"required"`
}

func (r profileRequest) profile() risk.Profile {
	return risk.Profile{
		Goal:        r.Goal,
		Medications: nonNil(r.Medications),
		Conditions:  nonNil(r.Conditions),
		Allergies:   nonNil(r.Allergies),
		AgeOver18:   *r.AgeOver18,
	}
}

// historyQuery pages through the caller's own history; the owner always
// comes from the X-User-ID header.
type historyQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

type fieldProblem struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

func (h *handler) assess(c *gin.Context) {
	p, ok := h.bindProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Assess(c.Request.Context(), p))
}

func (h *handler) generate(c *gin.Context) {
	p, ok := h.bindProfile(c)
	if !ok {
		return
	}

	rec, err := h.svc.Generate(c.Request.Context(), c.GetHeader(userIDHeader), p)
	if err != nil {
		// The recommendation stands; only the history write failed.
		c.Header("X-History-Recorded", "false")
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"protocols": h.svc.Catalog()})
}

func (h *handler) listRecommendations(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.bindError(c, err)
		return
	}

	lq := store.ListQuery{Skip: q.Skip, Limit: q.Limit}.Normalize()
	items, total, err := h.svc.History(c.Request.Context(), c.GetHeader(userIDHeader), lq)
	if err != nil {
		h.historyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"skip":  lq.Skip,
		"limit": lq.Limit,
	})
}

func (h *handler) getRecommendation(c *gin.Context) {
	rec, err := h.svc.Record(c.Request.Context(), c.GetHeader(userIDHeader), c.Param("id"))
	if err != nil {
		h.historyError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handler) bindProfile(c *gin.Context) (risk.Profile, bool) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return risk.Profile{}, false
	}
	if strings.TrimSpace(req.Goal) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": []fieldProblem{{Field: "goal", Problem: "must not be blank"}},
		})
		return risk.Profile{}, false
	}
	return req.profile(), true
}

func (h *handler) bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload_too_large"})
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		problems := make([]fieldProblem, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, fieldProblem{Field: lowerFirst(fe.Field()), Problem: describe(fe)})
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "details": problems})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
}

func (h *handler) historyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommend.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history_disabled"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		h.logger.Error("history lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
