package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	InvalidRequestBodyCode     = 1001
	InvalidRequestBodyMessage  = "invalid request body"
	RegionAlreadyExistsCode    = 1002
	RegionAlreadyExistsMessage = "region already exists"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case InvalidRequestBodyCode:
		errorStruct.ErrorCode = InvalidRequestBodyCode
		errorStruct.ErrorMessage = InvalidRequestBodyMessage
	case RegionAlreadyExistsCode:
		errorStruct.ErrorCode = RegionAlreadyExistsCode
		errorStruct.ErrorMessage = RegionAlreadyExistsMessage
	}

	return errorStruct
}
