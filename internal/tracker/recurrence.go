package tracker

import (
	"time"

	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/store"
)

// recurrenceStep is the advance applied to an overdue recurring task. All
// granularities (Daily, Weekly, Monthly) advance by a single day per pass;
// this matches the observed behavior and is kept as-is.
const recurrenceStep = 24 * time.Hour

// AdvanceOverdue moves the due date of every recurring task that is overdue
// at the given instant forward by one day. Only one step is applied per
// call, no matter how far in the past the due date lies; repeated calls keep
// advancing while the task remains overdue. Returns the number of tasks
// advanced.
func AdvanceOverdue(now time.Time) (int, error) {
	tasks, err := store.ListRecurring()
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, task := range tasks {
		due, ok := models.ParseDueDate(task.DueDate)
		if !ok || !due.Before(now) {
			continue
		}
		newDue := due.Add(recurrenceStep)
		if err := store.SetDueDate(task.ID, newDue.Format(time.RFC3339)); err != nil {
			log.Error().Err(err).Uint("task_id", task.ID).Msg("failed to advance recurring task")
			continue
		}
		advanced++
	}

	if advanced > 0 {
		log.Info().Int("advanced", advanced).Msg("advanced overdue recurring tasks")
	}
	return advanced, nil
}
