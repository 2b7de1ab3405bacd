package temporal

// Data holds the structured temporal fields extracted from free-form text.
// Dates are ISO (YYYY-MM-DD), times are 24h HH:MM. Missing fields are empty.
type Data struct {
	DueDate         string
	DueTime         string
	ReminderDate    string
	ReminderTime    string
	TimezoneContext string
}

// Empty reports whether no temporal field was extracted.
func (d Data) Empty() bool {
	return d == Data{}
}

// Extraction is the result of preprocessing one input string.
// It is constructed fresh per call and never mutated afterwards.
//
// Confidence is the contract with the caller: 0.0 means nothing matched and
// the caller must fall back to full LLM parsing; >= 0.7 means Data can be
// injected as parsing hints; >= 0.9 means an exact idiom resolved
// deterministically.
type Extraction struct {
	OriginalText  string
	ProcessedText string
	Data          Data
	Confidence    float64
}

// Confidence levels produced by the preprocessor.
const (
	ConfidenceNone            = 0.0
	ConfidenceGeneric         = 0.7
	ConfidenceDistinctRemind  = 0.8
	ConfidenceIdiom           = 0.9
	ConfidenceUsableThreshold = 0.7
)
