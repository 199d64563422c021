package logger

// ErrorLines renders err the way Error prints it in pretty mode.
func ErrorLines(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
