package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"

	// Store (snapshot source) codes
	CodeStoreReadError    Code = "STORE_READ_ERROR"
	CodeStoreParseError   Code = "STORE_PARSE_ERROR"
	CodeStoreInvalid      Code = "STORE_INVALID"
	CodeUnsupportedFormat Code = "UNSUPPORTED_STORE_FORMAT"
	CodeHCLParseError     Code = "HCL_PARSE_ERROR"
	CodeHCLEvalError      Code = "HCL_EVAL_ERROR"
	CodeMappingError      Code = "MAPPING_ERROR"

	// Platform codes
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"

	CodeValidationRuleError Code = "VALIDATION_RULE_ERROR"
	CodeReportError         Code = "REPORT_ERROR"
	CodeWatchError          Code = "WATCH_ERROR"
)

func (c Code) String() string {
	return string(c)
}

// Process exit statuses for the command line.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitStore    = 3
	ExitPlatform = 4
)

// ExitCode maps the code carried by err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case CodeConfigValidation, CodeConfigReadError, CodeConfigParseError:
		return ExitConfig
	case CodeStoreReadError, CodeStoreParseError, CodeStoreInvalid, CodeUnsupportedFormat,
		CodeHCLParseError, CodeHCLEvalError, CodeMappingError:
		return ExitStore
	case CodePlatformAPIError, CodePlatformAuthError:
		return ExitPlatform
	default:
		return ExitFailure
	}
}
