package repository

import "time"

// CreateBatchOptions holds the parameters for materializing a parsed
// task for one or more recipients.
type CreateBatchOptions struct {
	RecipientIDs    []string // user IDs, one task is created per entry
	Title           string
	Description     string
	StatusID        int64
	DueDate         *time.Time
	EstimatedPoints *int     // nil when the estimator marked the task meaningless
	Metadata        string   // JSON provenance blob from the estimator
	Tags            []string // tag names, created on first use
}
