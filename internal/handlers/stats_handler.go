package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
)

// GetStats handles GET /api/stats
// Returns counts of the caller's tasks by status plus total tracked time.
func GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	db := database.GetDB()

	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	if err := db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	counts := map[string]int64{
		string(models.StatusToDo):       0,
		string(models.StatusInProgress): 0,
		string(models.StatusInReview):   0,
		string(models.StatusComplete):   0,
	}
	var total int64
	for _, r := range rows {
		counts[r.Status] = r.Count
		total += r.Count
	}

	var trackedSeconds int64
	if err := db.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(time_tracked), 0)").
		Scan(&trackedSeconds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statuses":        counts,
		"total":           total,
		"tracked_seconds": trackedSeconds,
	})
}
