package cmd

// Exit codes for the jsonspec CLI
const (
	// ExitSuccess indicates every check passed
	ExitSuccess = 0

	// ExitCheckFailure indicates one or more checks failed or errored
	ExitCheckFailure = 1

	// ExitInputError indicates invalid usage, an unreadable file, or a
	// document that is not valid JSON
	ExitInputError = 2
)
