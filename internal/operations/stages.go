package operations

import (
	"context"

	"sportsight/internal/extractor"
	"sportsight/internal/infrastructure"
	"sportsight/internal/modeler"
)

// Stage identifiers of the refresh pipeline.
const (
	StageIDExtract = "extract"
	StageIDModel   = "model"
)

// ExtractStage wraps the document extractor as a pipeline stage.
type ExtractStage struct{}

// NewExtractStage creates the extraction stage.
func NewExtractStage() *ExtractStage { return &ExtractStage{} }

// ID returns the stage ID.
func (s *ExtractStage) ID() string { return StageIDExtract }

// Name returns the stage name.
func (s *ExtractStage) Name() string { return "PDF Extraction" }

// Run executes the extraction pass.
func (s *ExtractStage) Run(ctx context.Context, rc *infrastructure.RunContext) error {
	_, err := extractor.New(rc).Run(ctx, rc)
	return err
}

// ModelStage wraps the modeler as a pipeline stage.
type ModelStage struct{}

// NewModelStage creates the modeling stage.
func NewModelStage() *ModelStage { return &ModelStage{} }

// ID returns the stage ID.
func (s *ModelStage) ID() string { return StageIDModel }

// Name returns the stage name.
func (s *ModelStage) Name() string { return "Cleaning and Modeling" }

// Run executes the modeling pass.
func (s *ModelStage) Run(ctx context.Context, rc *infrastructure.RunContext) error {
	_, err := modeler.New(rc).Run(ctx, rc)
	return err
}
