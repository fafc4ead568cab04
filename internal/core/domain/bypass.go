package domain

// SchemaFileName is the multi-statement constraint/index definition file.
// It holds several independent administrative statements that cannot run as
// a single EXPLAIN, so it is reported as valid without being executed.
const SchemaFileName = "schema.cypher"

// IsBypassed reports whether fileName is exempt from dry-run validation.
func IsBypassed(fileName string) bool {
	return fileName == SchemaFileName
}

// BypassedResult returns the trivially passing result for a bypassed file.
// The file's text is never inspected.
func BypassedResult(fileName string) FileResult {
	return FileResult{
		FileName: fileName,
		Valid:    true,
		Bypassed: true,
		Stages: Stages{
			Syntax:     PassedStage(CheckMethodBypass),
			Schema:     PassedStage(CheckMethodBypass),
			Properties: PassedStage(CheckMethodBypass),
		},
	}
}
