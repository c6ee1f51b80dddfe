package model

import (
	"fmt"
	"time"
)

// DefaultBaseName is used when the user leaves the name template empty
const DefaultBaseName = "ConvertedImage"

// ConversionTask represents the conversion of one queued item
type ConversionTask struct {
	ID         string
	ItemID     string
	SourceName string
	Position   int // 1-based queue position at dispatch time
	Format     Format
	OutputName string // file name requested for delivery
	OutputPath string // where the file actually landed
	Status     TaskStatus
	Failure    FailureKind
	LastError  string // last error message if any
	Width      int    // natural width of the decoded source
	Height     int    // natural height of the decoded source
	OutputSize int64  // encoded size in bytes
	StartedAt  time.Time
	FinishedAt time.Time
}

// OutputFileName builds "<base>_<position>.<ext>"
func OutputFileName(base string, position int, format Format) string {
	return fmt.Sprintf("%s_%d.%s", base, position, format.Extension())
}

// GetDisplayTitle returns the delivered name, the requested name, or the source name in order of preference
func (ct *ConversionTask) GetDisplayTitle() string {
	if ct.OutputPath != "" {
		// Extract just the filename without path (support both / and \ separators)
		for i := len(ct.OutputPath) - 1; i >= 0; i-- {
			if ct.OutputPath[i] == '/' || ct.OutputPath[i] == '\\' {
				return ct.OutputPath[i+1:]
			}
		}
		return ct.OutputPath
	}
	if ct.OutputName != "" {
		return ct.OutputName
	}
	return ct.SourceName
}

// Duration returns how long the task ran, zero while it is unfinished
func (ct *ConversionTask) Duration() time.Duration {
	if ct.FinishedAt.IsZero() || ct.StartedAt.IsZero() {
		return 0
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}
