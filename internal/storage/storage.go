package storage

import "vaultScope/internal/model"

// StepSink defines a sink for built zap steps.
type StepSink interface {
	PutSteps(steps []model.ZapStep) error
}
