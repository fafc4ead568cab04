package domain

// CheckMethodDryRun names the single combined check performed by the dry-run strategy.
const CheckMethodDryRun = "EXPLAIN with parameters"

// CheckMethodBypass names the check method reported for bypassed files.
const CheckMethodBypass = "skipped (multi-statement schema file)"

// StageResult is the outcome of one validation dimension.
// Score is nil when the stage did not run.
type StageResult struct {
	OK       bool           `json:"ok"`
	Score    *float64       `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// Stages groups the three validation dimensions for one file.
type Stages struct {
	Syntax     StageResult `json:"syntax"`
	Schema     StageResult `json:"schema"`
	Properties StageResult `json:"properties"`
}

// FileResult is the validation outcome for a single query file.
type FileResult struct {
	FileName string `json:"file_name"`
	Valid    bool   `json:"valid"`
	Bypassed bool   `json:"bypassed,omitempty"`
	Stages
}

func fullScore() *float64 {
	s := 1.0
	return &s
}

// PassedStage reports a stage that held, attributed to method.
func PassedStage(method string) StageResult {
	return StageResult{
		OK:       true,
		Score:    fullScore(),
		Metadata: map[string]any{"method": method},
	}
}

// FailedStage reports a stage that failed with the given error text.
func FailedStage(errText string) StageResult {
	return StageResult{
		OK:       false,
		Metadata: map[string]any{"error": errText},
	}
}

// SkippedStage reports a stage that never ran because an earlier one failed.
func SkippedStage() StageResult {
	return StageResult{
		OK:       false,
		Metadata: map[string]any{"skipped": true},
	}
}

// NewFileResult builds a FileResult from raw stage outcomes.
// A failed syntax stage forces schema and properties to the skipped state,
// whatever the strategy reported for them.
func NewFileResult(fileName string, stages Stages) FileResult {
	if !stages.Syntax.OK {
		stages.Schema = SkippedStage()
		stages.Properties = SkippedStage()
	}
	return FileResult{
		FileName: fileName,
		Valid:    stages.Syntax.OK && stages.Schema.OK && stages.Properties.OK,
		Stages:   stages,
	}
}
