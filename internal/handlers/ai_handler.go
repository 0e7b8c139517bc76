package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/store"
)

// GetSuggestion handles POST /api/ai/suggest
// Sends the caller's tasks to the completion service and returns one
// productivity suggestion. Failures leave the feature inert: a notification
// to the caller, nothing applied.
func GetSuggestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if suggestion, hit := suggestionCache.Get(userID); hit {
		c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
		return
	}

	tasks, err := store.ListTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	suggestion, err := aiClient.Suggest(c.Request.Context(), tasks)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate suggestion")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate suggestion"})
		return
	}

	suggestionCache.Set(userID, suggestion, aiCacheTTL)
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
