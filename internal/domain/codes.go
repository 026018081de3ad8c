package domain

// Status codes returned in Response.StatusCode. These are part of the wire
// contract and never change at runtime.
const (
	CodeSuccessful          = "AP00" // transfer applied immediately
	CodePending             = "AP02" // valid but deferred by execution date
	CodeInsufficientFunds   = "AC01"
	CodeSelfTransfer        = "AC02"
	CodeAccountNotFound     = "AC03"
	CodeInvalidAccountID    = "AC04"
	CodeInvalidAmount       = "AM01"
	CodeCurrencyMismatch    = "CU01"
	CodeUnsupportedCurrency = "CU02"
	CodeMissingKeyword      = "SY01"
	CodeKeywordMismatch     = "SY02"
	CodeUnparseable         = "SY03"
	CodeInvalidDate         = "DT01"
)

var supportedCurrencies = map[string]struct{}{
	"NGN": {},
	"USD": {},
	"GBP": {},
	"GHS": {},
}

// IsSupportedCurrency reports whether code (already uppercased) is one of
// the currencies the engine accepts.
func IsSupportedCurrency(code string) bool {
	_, ok := supportedCurrencies[code]
	return ok
}
