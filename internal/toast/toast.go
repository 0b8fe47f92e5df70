package toast

// Severity classifies a toast for styling.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
	Warning Severity = "warning"
)

// Toast is a transient notification record.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	Visible  bool
}
