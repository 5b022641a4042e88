package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Life Calendar"
	AppID          = "com.github.tartampluch.go-lifecalendar"
	AppCommand     = "lifecalendar"
	LogFileName    = "app.log"
	DBFileName     = "lifecalendar.db"
	DataDirName    = "lifecalendar"
	DefaultAddr    = "127.0.0.1:18081"
	MCPServerName  = "lifecalendar"
	DocumentPrefix = "life_calendar_"
	ShortIDLength  = 8
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs, the database and exported documents.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagBaseAge      = "base-age"
	FlagDescBaseAge  = "Baseline life expectancy before lifestyle adjustment"
	FlagExercise     = "exercise"
	FlagDescExercise = "Exercise minutes per week"
	FlagSmoking      = "smoking"
	FlagDescSmoking  = "Smoking status (none, occasional, daily)"
	FlagWeight       = "weight"
	FlagDescWeight   = "Weight in kilograms"
	FlagHeight       = "height"
	FlagDescHeight   = "Height in centimeters"
	FlagDiet         = "diet"
	FlagDescDiet     = "Diet quality (healthy, moderate, unhealthy)"
	FlagAlcohol      = "alcohol"
	FlagDescAlcohol  = "Alcohol consumption (none, light, heavy)"
	FlagHealth       = "health-issues"
	FlagDescHealth   = "Abnormal blood pressure, sugar or cholesterol (yes, no)"
	FlagBirth        = "birth"
	FlagDescBirth    = "Date of birth (YYYY-MM-DD)"
	FlagGender       = "gender"
	FlagDescGender   = "Gender (male, female, other)"
	FlagDeath        = "death"
	FlagDescDeath    = "Estimated final day (YYYY-MM-DD)"
	FlagYears        = "years"
	FlagDescYears    = "Estimated lifespan in years, used when --death is not given"
	FlagVCard        = "vcard"
	FlagDescVCard    = "Read the date of birth from the BDAY field of a vCard file"
	FlagFormat       = "format"
	FlagDescFormat   = "Output format (pdf, png, ics)"
	FlagOutput       = "output"
	FlagDescOutput   = "Output file path"
	FlagPage         = "page"
	FlagDescPage     = "Year page to render for png output (0 renders all pages)"
	FlagAddr         = "addr"
	FlagDescAddr     = "HTTP listen address"
	FlagDataDir      = "data-dir"
	FlagDescDataDir  = "Directory holding the calculations database"
	FlagSave         = "save"
	FlagDescSave     = "Store the calculation and print its shareable id"
	FlagLimit        = "limit"
	FlagDescLimit    = "Maximum number of calculations to list"
	FlagID           = "id"
	FlagDescID       = "Render the calendar of a stored calculation"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Lifespan Model
// -----------------------------------------------------------------------------

const (
	DefaultBaseAge   = 75.0
	MinLifespanYears = 50.0

	// MaxLifespanYears bounds the ranges accepted by the outer layers so
	// a layout never exceeds a few hundred pages.
	MaxLifespanYears = 150.0

	WeightExercise = 0.20
	WeightSmoking  = 0.25
	WeightBMI      = 0.15
	WeightDiet     = 0.15
	WeightAlcohol  = 0.10
	WeightHealth   = 0.15

	ExerciseHighMinutes = 150
	ExerciseLowMinutes  = 75
	ExerciseHighScore   = 5
	ExerciseLowScore    = 3

	SmokingDailyScore      = -10
	SmokingOccasionalScore = -5

	BMINormalLow       = 18.5
	BMINormalHigh      = 24.9
	BMIOverweightLow   = 25.0
	BMIOverweightHigh  = 29.9
	BMINormalScore     = 2
	BMIOutOfRangeScore = -2

	DietHealthyScore   = 2
	DietUnhealthyScore = -2

	AlcoholHeavyScore = -3

	HealthNormalScore = 3
	HealthIssuesScore = -5

	// Form limits carried over from the web input form.
	MinWeightKg = 1.0
	MinHeightCm = 50.0
)

// DaysPerYear is the mean Gregorian year length.
const DaysPerYear = 365.25

// -----------------------------------------------------------------------------
// Calendar Layout & Rendering
// -----------------------------------------------------------------------------

const (
	// ISO A4 in PostScript points.
	PageWidth  = 595.27
	PageHeight = 841.89

	PageMargin    = 40.0
	HeaderHeight  = 30.0
	CircleRadius  = 12.0
	DaysPerPage   = 365
	DayTextOffset = 2.0

	// MinMarkersPerPage is the smallest grid (2x2) with finite spacing.
	MinMarkersPerPage = 4

	FontTitle     = "Helvetica-Bold"
	FontDay       = "Helvetica"
	FontSizeTitle = 20.0
	FontSizeDay   = 6.0

	FormatPageTitle = "Year %d"

	// RasterScale is the number of pixels per point in PNG previews.
	RasterScale       = 2.0
	RasterStrokeWidth = 1.0
	RasterPageGap     = 16

	// MaxRasterPages bounds one stacked PNG sheet; each A4 page costs
	// about 8 MB of pixels before encoding.
	MaxRasterPages = 10

	PDFCreator = AppName
	PDFTitle   = "Life Calendar"
	PDFUnit    = "pt"

	FormatPDF = "pdf"
	FormatPNG = "png"
	FormatICS = "ics"

	ExtPDF = ".pdf"
	ExtPNG = ".png"
	ExtICS = ".ics"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Life Calendar//Engine//EN"
	ICalCalName = "Life Calendar"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "lifecalendar"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	EventYearBegins = "Year %d begins"
	EventFinalDay   = "Estimated final day"

	UIDSalt         = "go-lifecalendar-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"
	UIDSuffixFinal  = "final"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// DateFormatStored is fixed-width so stored timestamps sort as text.
	DateFormatStored = "2006-01-02T15:04:05.000000000Z"

	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	DefaultGender = GenderMale

	DefaultListLimit = 20
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	SQLiteBusyTimeout  = 5000
	SQLiteDriver       = "sqlite"
	MaxRequestBodySize = 64 * 1024

	RouteCalculations = "/api/calculations"
	RouteCalculation  = "/api/calculations/{id}"
	RouteCalendarPDF  = "/calendar/{id}.pdf"
	RouteCalendarICS  = "/calendar/{id}.ics"
	RouteCalendarPNG  = "/calendar/{id}/pages/{page:[0-9]+}.png"
	RouteHealth       = "/healthz"
	FormatPDFPath     = "/calendar/%s.pdf"
	FormatICSPath     = "/calendar/%s.ics"
	FormatPNGPath     = "/calendar/%s/pages/%d.png"
	FormatCalcPath    = "/api/calculations/%s"

	PathVarID   = "id"
	PathVarPage = "page"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderCacheControl       = "Cache-Control"
	HeaderETag               = "ETag"
	HeaderXContentType       = "X-Content-Type-Options"
	HeaderIfNoneMatch        = "If-None-Match"
	HeaderLocation           = "Location"
	HeaderLastModified       = "Last-Modified"
	HeaderIfModifiedSince    = "If-Modified-Since"

	MimePDF             = "application/pdf"
	MimePNG             = "image/png"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// Document cache bounds used when Settings leaves them unset.
	DefaultDocCacheEntries = 64
	DefaultDocCacheBytes   = 64 << 20

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	// FormatAttachment expects the file name.
	FormatAttachment = `attachment; filename="%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidRange     = "invalid range"
	ErrInvalidGeometry  = "invalid page geometry"
	ErrHeightDomain     = "height must be positive"
	ErrScoreProfile     = "failed to score profile"
	ErrLayoutFailed     = "failed to compute calendar layout"
	ErrRenderFailed     = "failed to render calendar"
	ErrSurfaceSave      = "failed to finalize document"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrNoBirthday       = "no contact with a full date of birth found"
	ErrDateParse        = "unable to parse date"
	ErrFontParse        = "failed to parse font"
	ErrPNGEncode        = "failed to encode PNG"
	ErrTooManyPages     = "too many pages for one PNG"
	ErrDBOpen           = "open database"
	ErrDBCreateDir      = "create data directory"
	ErrDBPerms          = "set database permissions"
	ErrDBPragmas        = "configure pragmas"
	ErrDBSchema         = "initialize schema"
	ErrDBInsert         = "insert calculation"
	ErrDBQuery          = "query calculation"
	ErrDBDelete         = "delete calculation"
	ErrNotFound         = "calculation not found"
	ErrAmbiguousID      = "ambiguous id prefix"
	ErrDBScan           = "scan calculation"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrAddrRequired     = "listen address is required"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrDecodeBody       = "invalid request body"
	ErrLifespanTooLong  = "estimated lifespan exceeds supported range"
	ErrPageOutOfRange   = "page out of range"
	ErrUnknownFormat    = "unsupported output format"
	ErrBirthRequired    = "a date of birth is required (--birth or --vcard)"
	ErrWriteOutput      = "failed to write output file"
	ErrParseEnv         = "parse env"
	ErrNegativeExercise = "must not be negative"
	ErrWeightTooLow     = "must be at least 1 kg"
	ErrHeightTooLow     = "must be at least 50 cm"
	ErrBirthNotPast     = "date of birth must be in the past"
	ErrGenderInvalid    = "must be male, female or other"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgOK           = "ok"
)

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgRequest       = "Request served"
	MsgRequestFailed = "Request failed"
	MsgCalcStored    = "Calculation stored"
	MsgCalcDeleted   = "Calculation deleted"
	MsgDBOpened      = "Database opened"
	MsgDocRendered   = "Document rendered"
	MsgDocEvicted    = "Document evicted from cache"
	MsgDocWritten    = "Document written"
	MsgMCPStart      = "MCP server starting on stdio"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyStatus    = "status_code"
	LogKeyAddr      = "addr"
	LogKeyID        = "id"
	LogKeyCacheKey  = "cache_key"
	LogKeyFile      = "file"
	LogKeyFormat    = "format"
	LogKeyPages     = "pages"
	LogKeyDays      = "total_days"
	LogKeyYears     = "estimated_years"
	LogKeySizeBytes = "size_bytes"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain   = "main"
	CompServer = "server"
	CompStore  = "store"
	CompMCP    = "mcp"
	CompCLI    = "cli"
)
