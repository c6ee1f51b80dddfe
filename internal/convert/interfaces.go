package convert

import (
	"github.com/ytget/imgqueue/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	StartConversion(job Job) (*model.ConversionTask, error)
	GetTask(taskID string) (*model.ConversionTask, bool)
	Wait()
}
