package model

// TaskStatus represents the status of a conversion task
type TaskStatus string

const (
	// TaskStatusPending means the task is registered but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDecoding means the source bytes are being decoded
	TaskStatusDecoding TaskStatus = "Decoding"

	// TaskStatusEncoding means the image is being drawn and re-encoded
	TaskStatusEncoding TaskStatus = "Encoding"

	// TaskStatusCompleted means the output file was delivered
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusSkipped means encoding produced no result and the item was dropped
	TaskStatusSkipped TaskStatus = "Skipped"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDecoding || ts == TaskStatusEncoding
}

// IsFinished returns true if the task is in a finished state (completed, skipped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusSkipped || ts == TaskStatusError
}

// FailureKind tells which pipeline step a failed task stopped at
type FailureKind string

const (
	FailureNone    FailureKind = ""
	FailureDecode  FailureKind = "decode"
	FailureEncode  FailureKind = "encode"
	FailureDeliver FailureKind = "deliver"
)
