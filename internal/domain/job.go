package domain

import "time"

// JobStatus enumerates the edit-job lifecycle states.
type JobStatus string

const (
	JobStatusNoImage     JobStatus = "no_image"
	JobStatusImageLoaded JobStatus = "image_loaded"
	JobStatusRunning     JobStatus = "running"
	JobStatusSucceeded   JobStatus = "succeeded"
	JobStatusFailed      JobStatus = "failed"
)

// Image is an in-memory image payload together with its container format.
type Image struct {
	Data []byte
	MIME string
}

// IsZero reports whether no payload has been set.
func (i Image) IsZero() bool {
	return len(i.Data) == 0
}

// EditJob is one upload/invoke/result cycle. It is ephemeral: scoped to a
// single session, discarded when the user picks a new file or navigates
// away, never persisted.
type EditJob struct {
	ID        string
	Tool      ToolID
	Status    JobStatus
	Source    Image
	Result    Image
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
