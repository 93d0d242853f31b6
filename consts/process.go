package consts

const (
	// Execution run status codes
	StatusInit     = 1
	StatusRunning  = 2
	StatusFinished = 3

	// Execution run item outcome
	ItemOutcomeInitiated = 1
	ItemOutcomeSkipped   = 2
	ItemOutcomeFailed    = 3

	// Identifier prefixes
	PrefixFund        = "FUND"
	PrefixUser        = "USER"
	PrefixSip         = "SIP"
	PrefixTransaction = "TXN"
	PrefixRun         = "RUN"

	// Default config
	DefaultWorkerNumber = 1
	DefaultCronSpec     = "@every 30s"
	DefaultOperator     = "system"
	UnknownFundName     = "Unknown Fund"
)
