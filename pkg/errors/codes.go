// Package errors provides error code constants for the report generator.
// Error codes are organized by category for consistent handling and lookup.
package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------
// Use these codes for errors related to config file loading, parsing,
// and validation.

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file could not be parsed.
	// Usually a YAML syntax error or invalid structure.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are invalid.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigInitFailed indicates config initialization failed.
	ErrConfigInitFailed = "CONFIG_INIT_FAILED"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Session Error Codes
// -----------------------------------------------------------------------------
// Use these codes for errors related to interview session data.

const (
	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = "SESSION_NOT_FOUND"

	// ErrSessionInvalid indicates the session payload failed validation.
	ErrSessionInvalid = "SESSION_INVALID"

	// ErrSessionDecodeFailed indicates the session JSON could not be decoded.
	ErrSessionDecodeFailed = "SESSION_DECODE_FAILED"

	// ErrSessionEmpty indicates the session has no feedback to report on.
	ErrSessionEmpty = "SESSION_EMPTY"
)

// -----------------------------------------------------------------------------
// Chart Error Codes
// -----------------------------------------------------------------------------
// Use these codes for chart rendering and image extraction errors.

const (
	// ErrChartSourceMissing indicates the chart has no drawable source.
	// The chart section is skipped; report generation proceeds.
	ErrChartSourceMissing = "CHART_SOURCE_MISSING"

	// ErrChartNoData indicates the chart source has no usable data points.
	ErrChartNoData = "CHART_NO_DATA"

	// ErrChartUnknownKind indicates an unrecognized chart kind.
	ErrChartUnknownKind = "CHART_UNKNOWN_KIND"

	// ErrChartRenderFailed indicates off-screen chart rendering failed.
	ErrChartRenderFailed = "CHART_RENDER_FAILED"

	// ErrChartEncodeFailed indicates PNG encoding of the chart surface failed.
	ErrChartEncodeFailed = "CHART_ENCODE_FAILED"

	// ErrChartFontFailed indicates the chart label font could not be loaded.
	ErrChartFontFailed = "CHART_FONT_FAILED"
)

// -----------------------------------------------------------------------------
// Layout Error Codes
// -----------------------------------------------------------------------------
// Use these codes for document layout and pagination errors.

const (
	// ErrLayoutInvalidOptions indicates layout options failed validation.
	ErrLayoutInvalidOptions = "LAYOUT_INVALID_OPTIONS"

	// ErrLayoutImageFailed indicates an image could not be placed on the page.
	ErrLayoutImageFailed = "LAYOUT_IMAGE_FAILED"

	// ErrLayoutDocumentFailed indicates the underlying PDF document
	// entered an error state.
	ErrLayoutDocumentFailed = "LAYOUT_DOCUMENT_FAILED"
)

// -----------------------------------------------------------------------------
// Storage Error Codes
// -----------------------------------------------------------------------------
// Use these codes for session store errors.

const (
	// ErrStorageReadFailed indicates a session file read failed.
	ErrStorageReadFailed = "STORAGE_READ_FAILED"

	// ErrStorageWriteFailed indicates a session file write failed.
	ErrStorageWriteFailed = "STORAGE_WRITE_FAILED"

	// ErrStorageDirFailed indicates the store directory could not be created.
	ErrStorageDirFailed = "STORAGE_DIR_FAILED"

	// ErrStorageCorrupt indicates a stored session file could not be decoded.
	ErrStorageCorrupt = "STORAGE_CORRUPT"
)

// -----------------------------------------------------------------------------
// Server Error Codes
// -----------------------------------------------------------------------------
// Use these codes for HTTP/WebSocket server errors.

const (
	// ErrServerStartFailed indicates the HTTP server failed to start.
	ErrServerStartFailed = "SERVER_START_FAILED"

	// ErrServerBadRequest indicates a malformed API request body.
	ErrServerBadRequest = "SERVER_BAD_REQUEST"
)

// -----------------------------------------------------------------------------
// Internal Error Codes
// -----------------------------------------------------------------------------
// Use these codes for internal/unexpected errors.

const (
	// ErrInternal indicates an unexpected internal error.
	ErrInternal = "INTERNAL_ERROR"

	// ErrInternalPanic indicates a panic was recovered.
	ErrInternalPanic = "INTERNAL_PANIC"
)

// -----------------------------------------------------------------------------
// Error Code Lookup Helpers
// -----------------------------------------------------------------------------

// CodeCategory returns the category for a given error code.
// Returns CategoryInternal if the code is not recognized.
func CodeCategory(code string) Category {
	switch code {
	case ErrConfigNotFound, ErrConfigParseFailed, ErrConfigInvalid,
		ErrConfigInitFailed, ErrConfigWriteFailed:
		return CategoryConfig

	case ErrSessionNotFound, ErrSessionInvalid, ErrSessionDecodeFailed,
		ErrSessionEmpty:
		return CategorySession

	case ErrChartSourceMissing, ErrChartNoData, ErrChartUnknownKind,
		ErrChartRenderFailed, ErrChartEncodeFailed, ErrChartFontFailed:
		return CategoryChart

	case ErrLayoutInvalidOptions, ErrLayoutImageFailed, ErrLayoutDocumentFailed:
		return CategoryLayout

	case ErrStorageReadFailed, ErrStorageWriteFailed, ErrStorageDirFailed,
		ErrStorageCorrupt:
		return CategoryStorage

	case ErrServerStartFailed, ErrServerBadRequest:
		return CategoryServer

	case ErrInternal, ErrInternalPanic:
		return CategoryInternal

	default:
		return CategoryInternal
	}
}

// IsConfigCode returns true if the code is a configuration error code.
func IsConfigCode(code string) bool {
	return CodeCategory(code) == CategoryConfig
}

// IsSessionCode returns true if the code is a session error code.
func IsSessionCode(code string) bool {
	return CodeCategory(code) == CategorySession
}

// IsChartCode returns true if the code is a chart error code.
func IsChartCode(code string) bool {
	return CodeCategory(code) == CategoryChart
}

// IsLayoutCode returns true if the code is a layout error code.
func IsLayoutCode(code string) bool {
	return CodeCategory(code) == CategoryLayout
}

// IsStorageCode returns true if the code is a storage error code.
func IsStorageCode(code string) bool {
	return CodeCategory(code) == CategoryStorage
}

// IsServerCode returns true if the code is a server error code.
func IsServerCode(code string) bool {
	return CodeCategory(code) == CategoryServer
}
