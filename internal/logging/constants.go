package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldUserID     = "user_id"
	FieldCategory   = "category"
	FieldIncome     = "income"
	FieldAmount     = "amount"
	FieldConfidence = "confidence"
	FieldCount      = "count"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldSessionID  = "session_id"
	FieldVersion    = "version"
	FieldReason     = "reason"
	FieldError      = "error"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldDelimiter  = "delimiter"
)
