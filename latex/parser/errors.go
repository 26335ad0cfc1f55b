package parser

// Error codes carried by Error nodes.
const (
	CodeMissing                  = "missing"
	CodeUnexpectedToken          = "unexpected-token"
	CodeUnexpectedCommand        = "unexpected-command"
	CodeUnexpectedOperator       = "unexpected-operator"
	CodeExpectedOpenDelimiter    = "expected-open-delimiter"
	CodeExpectedClosingDelimiter = "expected-closing-delimiter"
	CodeExpectedEnvironmentName  = "expected-environment-name"
	CodeUnbalancedEnvironment    = "unbalanced-environment"
	CodeUnknownEnvironment       = "unknown-environment"
	CodeInvalidIdentifier        = "invalid-identifier"
	CodeExpectedArgument         = "expected-argument"
)
