// Package constants provides shared constants for the investment-form application.
package constants

// DateLayout is the format of every date field on the form and on the wire.
const DateLayout = "2006-01-02"

// Derivation ratios applied to the property price.
const (
	// PurchaseExpenseRatio is the share of the total price spent on purchase costs
	PurchaseExpenseRatio = 0.08

	// EquityRatio is the share of the total price paid from own capital,
	// before purchase costs are added on top
	EquityRatio = 0.10

	// LoanRatio is the share of the total price financed by the loan
	LoanRatio = 0.90

	// OperatingExpenseRatio is the share of full-occupancy rent spent on operations
	OperatingExpenseRatio = 0.07

	// SaleExpenseRatio is the share of the expected sale price spent on sale costs
	SaleExpenseRatio = 0.04

	// PriceSplitRatio is the land share used when neither component price is known
	PriceSplitRatio = 0.5
)

// Form defaults applied to every new session.
const (
	// DefaultVacancyRate is the initial vacancy rate
	DefaultVacancyRate = 0.05

	// DefaultLoanTermYears is the initial loan term
	DefaultLoanTermYears = 35

	// DefaultRentDeclineRate is the initial yearly rent decline rate
	DefaultRentDeclineRate = 0.01

	// DefaultExpectedRateOfReturn is the initial expected rate of return
	DefaultExpectedRateOfReturn = 0.05

	// DefaultOwnerType is the initial owner classification (individual)
	DefaultOwnerType = "個人"

	// DefaultLoanType is the initial repayment method (equal installments)
	DefaultLoanType = "元利均等"

	// DefaultSaleHorizonYears is how far ahead the default sale date lies
	DefaultSaleHorizonYears = 30
)

// Numeric tolerances
const (
	// FloatTolerance is the relative tolerance used when comparing derived yen values
	FloatTolerance = 1e-9

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Logging constants
const (
	// LogFormatJSON is the production log encoding
	LogFormatJSON = "json"

	// LogFormatConsole is the development log encoding
	LogFormatConsole = "console"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultSessionIdleTimeout is how long an untouched form session survives
	DefaultSessionIdleTimeout = "30m"
)

// Valuation API defaults
const (
	// DefaultValuationURL is the default valuation endpoint
	DefaultValuationURL = "http://localhost:8000/api/v1/realestate/analysis"

	// DefaultValuationTimeout is the default timeout for a valuation request
	DefaultValuationTimeout = "30s"
)
