package entities

// Method identifies which moderation stages produced a verdict. It is a
// closed set: local (filter only), external (classifier flagged), all (both
// stages ran and passed).
type Method string

const (
	MethodLocal    Method = "local"
	MethodExternal Method = "external"
	MethodAll      Method = "all"
)

// Flagged-field markers. Local matches identify the name or description
// field; the external classifier scores the combined text.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldContent     = "content"
)

type Result struct {
	Passed       bool
	Method       Method
	FlaggedField string
	Reason       string
	Scores       map[string]float64
}

func Pass(method Method) Result {
	return Result{Passed: true, Method: method}
}

func FailLocal(field string) Result {
	return Result{
		Passed:       false,
		Method:       MethodLocal,
		FlaggedField: field,
		Reason:       "prohibited content",
	}
}

func FailExternal(reason string, scores map[string]float64) Result {
	return Result{
		Passed:       false,
		Method:       MethodExternal,
		FlaggedField: FieldContent,
		Reason:       reason,
		Scores:       scores,
	}
}
