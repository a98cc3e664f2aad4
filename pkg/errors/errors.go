package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID          = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	InvalidRequest         = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	EmailAlreadyRegistered = Definition{Code: "EMAIL_ALREADY_REGISTERED", Message: "Email already registered"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	RefreshTokenInvalid    = Definition{Code: "REFRESH_TOKEN_INVALID", Message: "Refresh token invalid or expired"}
)

// 考勤表编辑错误。
var (
	SheetNotEditable    = Definition{Code: "SHEET_NOT_EDITABLE", Message: "Sheet is not in edit mode"}
	SheetCapacity       = Definition{Code: "SHEET_CAPACITY_REACHED", Message: "Sheet already holds the maximum number of rows"}
	SheetNoEmptyRows    = Definition{Code: "SHEET_NO_EMPTY_ROWS", Message: "No empty rows available to reclaim"}
	SheetSaveInProgress = Definition{Code: "SHEET_SAVE_IN_PROGRESS", Message: "A save is already in progress"}
	SheetDraftExpired   = Definition{Code: "SHEET_DRAFT_EXPIRED", Message: "Editing session expired"}
	SheetUndoExpired    = Definition{Code: "SHEET_UNDO_EXPIRED", Message: "Undo window expired"}
)

// 考勤记录错误。
var (
	WorkLogNotFound = Definition{Code: "WORKLOG_NOT_FOUND", Message: "Work log not found"}
	PeriodInvalid   = Definition{Code: "PERIOD_INVALID", Message: "Period must be formatted as YYYY-MM"}
)

// PDF 提取错误。
var (
	FileTooLarge          = Definition{Code: "FILE_TOO_LARGE", Message: "File exceeds the upload size limit"}
	FileTypeInvalid       = Definition{Code: "FILE_TYPE_INVALID", Message: "Only PDF files are accepted"}
	ExtractionFailed      = Definition{Code: "EXTRACTION_FAILED", Message: "Extraction failed"}
	ExtractionUnavailable = Definition{Code: "EXTRACTION_UNAVAILABLE", Message: "Extraction service unavailable"}
)

// 个人资料错误。
var (
	SignatoryLimitExceeded = Definition{Code: "SIGNATORY_LIMIT_EXCEEDED", Message: "At most two signatories are allowed"}
	SignatoryIDInvalid     = Definition{Code: "SIGNATORY_ID_INVALID", Message: "Signatory ID must be 1 or 2"}
	SignatureInvalid       = Definition{Code: "SIGNATURE_INVALID", Message: "Signature image is not a valid PNG"}
)

// 打印导出错误。
var (
	ExportNotFound = Definition{Code: "EXPORT_NOT_FOUND", Message: "Export not found"}
	ExportNotReady = Definition{Code: "EXPORT_NOT_READY", Message: "Export is not ready yet"}
	ExportExpired  = Definition{Code: "EXPORT_EXPIRED", Message: "Export file has been removed"}
)

// 限流错误。
var (
	RateLimited = Definition{Code: "RATE_LIMITED", Message: "Too many requests"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:           Unauthorized,
	InvalidUserID.Code:          InvalidUserID,
	InvalidRequest.Code:         InvalidRequest,
	EmailAlreadyRegistered.Code: EmailAlreadyRegistered,
	InvalidCredentials.Code:     InvalidCredentials,
	RefreshTokenInvalid.Code:    RefreshTokenInvalid,
	SheetNotEditable.Code:       SheetNotEditable,
	SheetCapacity.Code:          SheetCapacity,
	SheetNoEmptyRows.Code:       SheetNoEmptyRows,
	SheetSaveInProgress.Code:    SheetSaveInProgress,
	SheetDraftExpired.Code:      SheetDraftExpired,
	SheetUndoExpired.Code:       SheetUndoExpired,
	WorkLogNotFound.Code:        WorkLogNotFound,
	PeriodInvalid.Code:          PeriodInvalid,
	FileTooLarge.Code:           FileTooLarge,
	FileTypeInvalid.Code:        FileTypeInvalid,
	ExtractionFailed.Code:       ExtractionFailed,
	ExtractionUnavailable.Code:  ExtractionUnavailable,
	SignatoryLimitExceeded.Code: SignatoryLimitExceeded,
	SignatoryIDInvalid.Code:     SignatoryIDInvalid,
	SignatureInvalid.Code:       SignatureInvalid,
	ExportNotFound.Code:         ExportNotFound,
	ExportNotReady.Code:         ExportNotReady,
	ExportExpired.Code:          ExportExpired,
	RateLimited.Code:            RateLimited,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// WithMessage 在保留错误码的前提下替换默认信息，
// 用于把提取服务返回的原文透传给调用方。
func (d Definition) WithMessage(message string) Definition {
	return Definition{Code: d.Code, Message: message}
}
