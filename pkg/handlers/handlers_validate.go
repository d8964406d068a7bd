package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradeling/roster-api-go/pkg/models"
)

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Basic validation of data structures
	if len(input.Agents) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one agent is required",
		})
		return
	}

	if len(input.Shifts) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one shift is required",
		})
		return
	}

	shiftIDs := make(map[string]bool)
	for _, s := range input.Shifts {
		if shiftIDs[s.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate shift ID: " + s.ID})
			return
		}
		shiftIDs[s.ID] = true
	}

	// Agent names are unique case-insensitively
	names := make(map[string]bool)
	for _, a := range input.Agents {
		lower := strings.ToLower(a.Name)
		if names[lower] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate agent name: " + a.Name})
			return
		}
		names[lower] = true

		if a.ShiftID != models.ShiftFlexible && !shiftIDs[a.ShiftID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Agent " + a.Name + " references unknown shift: " + a.ShiftID})
			return
		}

		for _, d := range a.PTO {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Agent " + a.Name + " has malformed PTO date: " + d})
				return
			}
		}
	}

	if input.Config.SplitDate != 0 && (input.Config.SplitDate < 1 || input.Config.SplitDate > 28) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "split_date must be between 1 and 28"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"agent_count": len(input.Agents),
			"shift_count": len(input.Shifts),
		},
	})
}
