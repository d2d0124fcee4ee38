package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	CodeWorkbookReadError  Code = "WORKBOOK_READ_ERROR"
	CodeWorkbookWriteError Code = "WORKBOOK_WRITE_ERROR"
	CodeWorkbookBackup     Code = "WORKBOOK_BACKUP_ERROR"
	CodeSheetStructure     Code = "SHEET_STRUCTURE_ERROR"

	CodeInventoryAPIError  Code = "INVENTORY_API_ERROR"
	CodeInventoryAuthError Code = "INVENTORY_AUTH_ERROR"
	CodeDNSError           Code = "DNS_ERROR"
	CodeReportError        Code = "REPORT_ERROR"
)

func (c Code) String() string {
	return string(c)
}
