package service

import (
	"math"

	"github.com/minhvu/todo-api/internal/domain"
)

// TaskSummary is the aggregate shown on the dashboard: total task count,
// done count, and the completion percentage.
type TaskSummary struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Percent int `json:"percent"`
}

// Summarize computes the completion summary over the given task collection.
// Percent is round-to-nearest of done/total*100, and 0 when there are no
// tasks.
func Summarize(tasks []*domain.TaskWithOwner) TaskSummary {
	summary := TaskSummary{Total: len(tasks)}

	for _, task := range tasks {
		if task.Done {
			summary.Done++
		}
	}

	if summary.Total > 0 {
		summary.Percent = int(math.Round(float64(summary.Done) / float64(summary.Total) * 100))
	}

	return summary
}
