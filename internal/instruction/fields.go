package instruction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"payinstr/internal/domain"
)

// Field positions are fixed once the instruction type is known.
const (
	amountIdx        = 1
	currencyIdx      = 2
	firstAccountIdx  = 5
	secondAccountIdx = 10
	onKeywordIdx     = 11
	dateIdx          = 12
)

// accountIndexes returns the debit and credit account token positions for
// typ. A DEBIT instruction names the debit account first; a CREDIT
// instruction swaps them.
func accountIndexes(typ domain.InstructionType) (debitIdx, creditIdx int) {
	if typ == domain.TypeCredit {
		return secondAccountIdx, firstAccountIdx
	}
	return firstAccountIdx, secondAccountIdx
}

// parseAmount parses token 1 as a strictly positive base-10 integer. The
// token must be ASCII digits only; signs, decimal points and other
// characters are each called out by kind.
func parseAmount(token string) (int64, *domain.ValidationError) {
	if token == "" {
		return 0, amountError("amount is missing")
	}

	for _, c := range token {
		switch {
		case c == '-':
			return 0, amountError(fmt.Sprintf("amount '%s' must not contain a negative sign", token))
		case c == '.':
			return 0, amountError(fmt.Sprintf("amount '%s' must not contain a decimal point", token))
		case c < '0' || c > '9':
			return 0, amountError(fmt.Sprintf("amount '%s' contains non-numeric character '%c'", token, c))
		}
	}

	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, amountError(fmt.Sprintf("amount '%s' is not a representable number", token))
	}
	if value <= 0 {
		return 0, amountError(fmt.Sprintf("amount '%s' must be greater than zero", token))
	}
	return value, nil
}

func amountError(message string) *domain.ValidationError {
	return &domain.ValidationError{Code: domain.CodeInvalidAmount, Message: message}
}

// parseCurrency uppercases token 2 and checks membership in the supported
// set.
func parseCurrency(token string) (string, *domain.ValidationError) {
	currency := strings.ToUpper(token)
	if !domain.IsSupportedCurrency(currency) {
		return "", &domain.ValidationError{
			Code:    domain.CodeUnsupportedCurrency,
			Message: fmt.Sprintf("unsupported currency '%s'", token),
		}
	}
	return currency, nil
}

// parseAccountID checks an account id token against the allowed charset
// [0-9A-Za-z.@-]. side names the account in error messages ("debit" or
// "credit"); the first disallowed character is reported.
func parseAccountID(token, side string) (string, *domain.ValidationError) {
	if token == "" {
		return "", &domain.ValidationError{
			Code:    domain.CodeInvalidAccountID,
			Message: fmt.Sprintf("%s account id must not be empty", side),
		}
	}

	for _, c := range token {
		if isAccountIDChar(c) {
			continue
		}
		return "", &domain.ValidationError{
			Code:    domain.CodeInvalidAccountID,
			Message: fmt.Sprintf("invalid character '%c' in %s account id '%s'", c, side, token),
		}
	}
	return token, nil
}

func isAccountIDChar(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c == '-' || c == '.' || c == '@':
		return true
	}
	return false
}

// parseExecuteBy extracts the optional execution date clause. Instructions
// shorter than 12 tokens carry no date clause and none is required; this
// tolerance is a token-count heuristic inherited from the wire contract,
// not a grammar invariant.
func parseExecuteBy(tokens []string) (*string, *domain.ValidationError) {
	if len(tokens) < onKeywordIdx+1 {
		return nil, nil
	}

	if !strings.EqualFold(tokens[onKeywordIdx], "ON") {
		if looksLikeDate(tokenAt(tokens, dateIdx)) {
			return nil, &domain.ValidationError{
				Code:    domain.CodeInvalidDate,
				Message: fmt.Sprintf("execution date '%s' provided without 'ON' keyword", tokenAt(tokens, dateIdx)),
			}
		}
		return nil, &domain.ValidationError{
			Code:    domain.CodeMissingKeyword,
			Message: "missing keyword 'ON'",
		}
	}

	if len(tokens) < dateIdx+1 {
		return nil, &domain.ValidationError{
			Code:    domain.CodeInvalidDate,
			Message: "incomplete execution date: 'ON' must be followed by a date",
		}
	}

	raw := tokens[dateIdx]
	if verr := validateDate(raw); verr != nil {
		return nil, verr
	}
	return &raw, nil
}

// looksLikeDate reports whether token has the YYYY-MM-DD shape, without
// checking digit or calendar validity.
func looksLikeDate(token string) bool {
	return len(token) == 10 && token[4] == '-' && token[7] == '-'
}

// validateDate enforces strict YYYY-MM-DD: fixed width, pure-digit parts,
// month and day ranges, and calendar validity under UTC.
func validateDate(raw string) *domain.ValidationError {
	if !looksLikeDate(raw) {
		return dateError(raw, "expected format YYYY-MM-DD")
	}

	yearStr, monthStr, dayStr := raw[:4], raw[5:7], raw[8:]
	if !isDigits(yearStr) || !isDigits(monthStr) || !isDigits(dayStr) {
		return dateError(raw, "year, month and day must be numeric")
	}

	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	if month < 1 || month > 12 {
		return dateError(raw, "month must be between 01 and 12")
	}
	if day < 1 || day > 31 {
		return dateError(raw, "day must be between 01 and 31")
	}

	// Round-trip through time.Date catches impossible dates such as
	// February 30: out-of-range components get normalized into the next
	// month.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return dateError(raw, "not a valid calendar date")
	}
	return nil
}

func dateError(raw, detail string) *domain.ValidationError {
	return &domain.ValidationError{
		Code:    domain.CodeInvalidDate,
		Message: fmt.Sprintf("invalid execution date '%s': %s", raw, detail),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
