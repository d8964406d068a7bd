package handlers

import (
	"embed"
	"encoding/csv"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradeling/roster-api-go/pkg/auth"
	"github.com/tradeling/roster-api-go/pkg/database"
	"github.com/tradeling/roster-api-go/pkg/models"
	"github.com/tradeling/roster-api-go/pkg/roster"
	"github.com/tradeling/roster-api-go/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB    *gorm.DB
	Store *store.Store
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for roster routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		userID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      userID,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// GenerateRoster handles the JSON-based roster generation request
func (h *Handler) GenerateRoster(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, ok := h.generate(c, &input)
	if !ok {
		return
	}

	h.RecordUsage(c, len(input.Agents), result.Summary.TotalDays)
	c.JSON(http.StatusOK, result)
}

// GenerateRosterCSV generates a roster and returns the grid as CSV,
// one row per day and one column per agent.
func (h *Handler) GenerateRosterCSV(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, ok := h.generate(c, &input)
	if !ok {
		return
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	header := []string{"date", "day", "total"}
	for _, a := range input.Agents {
		header = append(header, a.Name)
	}
	writer.Write(header)

	for _, day := range result.Grid {
		row := []string{day.Date, day.Weekday, strconv.Itoa(day.Total)}
		for _, a := range input.Agents {
			assign := day.Assignments[a.Name]
			val := "OFF"
			if assign.Status == models.StatusWorking {
				val = assign.Task
			} else if assign.Status == models.StatusPTO {
				val = "PTO"
			}
			row = append(row, val)
		}
		writer.Write(row)
	}
	writer.Flush()

	h.RecordUsage(c, len(input.Agents), result.Summary.TotalDays)
	c.JSON(http.StatusOK, gin.H{"csv": out.String()})
}

// generate wires persisted continuity into the input, runs the engine and
// persists the outcome. It writes the HTTP error response itself and
// returns ok=false when generation did not complete.
func (h *Handler) generate(c *gin.Context, input *models.RosterInput) (*models.RosterResult, bool) {
	// Fill in continuity from the persisted record when the caller did not
	// supply any, per the continuity contract: same-month grid for a
	// second-half run, previous month's final state otherwise.
	if input.Continuity == nil && input.History == nil {
		if input.Config.Scope == models.ScopeSecondHalf {
			if input.FirstHalf == nil {
				if prev, err := h.Store.LoadSchedule(input.Year, input.Month); err == nil && prev != nil {
					input.FirstHalf = prev.Grid
				}
			}
		} else {
			prevYear, prevMonth := input.Year, input.Month-1
			if prevMonth < 1 {
				prevYear, prevMonth = input.Year-1, 12
			}
			if prev, err := h.Store.LoadSchedule(prevYear, prevMonth); err == nil && prev != nil && prev.FinalState != nil {
				input.Continuity = prev.FinalState
			}
		}
	}

	result, err := roster.Generate(*input)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrContinuityUnknown):
			c.JSON(http.StatusConflict, gin.H{
				"error":               err.Error(),
				"continuity_required": true,
			})
		case errors.Is(err, roster.ErrInvalidPeriod), errors.Is(err, roster.ErrMissingContinuityInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}

	if err := h.Store.SaveSchedule(input.Year, input.Month, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist schedule"})
		return nil, false
	}
	return result, true
}

// GetRoster returns the persisted roster for a month
func (h *Handler) GetRoster(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	result, err := h.Store.LoadSchedule(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedule"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedule for this month"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// OverrideAssignment applies a manual single-cell override to a persisted
// roster and recomputes that day's coverage
func (h *Handler) OverrideAssignment(c *gin.Context) {
	var input models.OverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Store.LoadSchedule(input.Year, input.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedule"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedule for this month"})
		return
	}

	if err := roster.SetAssignment(result.Grid, input.DayIndex, input.AgentName,
		input.Assignment, input.Agents, input.Shifts, input.Rules); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result.Summary = roster.Summarize(result.Grid, len(input.Shifts))

	if err := h.Store.SaveSchedule(input.Year, input.Month, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":     result.Grid[input.DayIndex],
		"summary": result.Summary,
	})
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, agentCount, dayCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_agents":  gorm.Expr("total_agents + ?", agentCount),
			"total_days":    gorm.Expr("total_days + ?", dayCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:        apiKey.ID,
		Date:         today,
		RequestCount: 1,
		TotalAgents:  agentCount,
		TotalDays:    dayCount,
	})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	_ = auth.EnsureAdminExists(h.DB)

	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
