package model

// Keyword is a named configuration value scoped to a sandbox execution profile.
type Keyword struct {
	Name             string
	Value            string
	DataType         string
	ExecutionProfile string
}

// DefaultExecutionProfile is the execution profile used when none is set.
const DefaultExecutionProfile = "Default"

// KeywordSet is the set of keywords returned by the controller for an execution profile.
type KeywordSet struct {
	// Keywords is nil when the controller has no keywords for the profile.
	Keywords []Keyword
	// Message is the controller message.
	Message string
}
