package ports

// LoggerPort is the structured log sink shared by the use cases, adapters and
// handlers. Messages of one extraction carry its run id as a "[id]" prefix.
type LoggerPort interface {
	Info(msg string)
	Error(msg string, err error)
	Warning(msg string)
	Close()
}
