// Package instruction implements the payment instruction engine: a
// strictly sequential pipeline that tokenizes a free-text instruction,
// matches it against a fixed positional grammar, parses its fields,
// applies the business rules against caller-supplied accounts and
// assembles a structured verdict. The engine holds no state between calls.
package instruction

import (
	"strings"
	"time"

	"payinstr/internal/domain"
	"payinstr/pkg/logger"
)

// Service runs the instruction pipeline. It is safe for concurrent use:
// every call works on fresh derived data only.
type Service struct {
	logger logger.Logger
	now    func() time.Time
}

// NewService constructs a Service using the wall clock.
func NewService(log logger.Logger) *Service {
	return &Service{
		logger: log,
		now:    time.Now,
	}
}

// NewServiceWithClock constructs a Service with an injected clock, used by
// tests that depend on what "today" is.
func NewServiceWithClock(log logger.Logger, now func() time.Time) *Service {
	return &Service{
		logger: log,
		now:    now,
	}
}

// Process runs one instruction through the full pipeline and returns its
// verdict. Every rejectable condition comes back as a failed Response with
// a specific status code; Process never returns an error for domain-rule
// violations.
func (s *Service) Process(req *domain.Request) *domain.Response {
	tokens := Tokenize(strings.TrimSpace(req.Instruction))

	typ, ok := instructionType(tokens)
	if !ok {
		s.logger.Debug("no recognized instruction type", map[string]interface{}{
			"token_count": len(tokens),
		})
		return unparseableResponse()
	}

	typeName := string(typ)
	e := &echo{Type: &typeName}

	if verr := checkKeywords(tokens, typ); verr != nil {
		return failedResponse(e, verr, nil)
	}

	amount, verr := parseAmount(tokenAt(tokens, amountIdx))
	if verr != nil {
		return failedResponse(e, verr, nil)
	}
	e.Amount = &amount

	currency, verr := parseCurrency(tokenAt(tokens, currencyIdx))
	if verr != nil {
		return failedResponse(e, verr, nil)
	}
	e.Currency = &currency

	debitID, creditID, verr := parseAccounts(tokens, typ, e)
	if verr != nil {
		return failedResponse(e, verr, nil)
	}

	executeBy, verr := parseExecuteBy(tokens)
	if verr != nil {
		return failedResponse(e, verr, nil)
	}
	e.ExecuteBy = executeBy

	parsed := domain.ParsedInstruction{
		Type:          typ,
		Amount:        amount,
		Currency:      currency,
		DebitAccount:  debitID,
		CreditAccount: creditID,
		ExecuteBy:     executeBy,
	}

	today := s.now().UTC().Format("2006-01-02")
	return buildResponse(&parsed, evaluate(&parsed, req.Accounts, today))
}

// parseAccounts validates both account tokens in their positional order,
// so the earlier token's error wins regardless of which side it names.
func parseAccounts(tokens []string, typ domain.InstructionType, e *echo) (debitID, creditID string, verr *domain.ValidationError) {
	debitIdx, _ := accountIndexes(typ)

	firstSide, secondSide := "debit", "credit"
	if typ == domain.TypeCredit {
		firstSide, secondSide = "credit", "debit"
	}

	first, verr := parseAccountID(tokenAt(tokens, firstAccountIdx), firstSide)
	if verr != nil {
		return "", "", verr
	}
	if firstAccountIdx == debitIdx {
		e.DebitAccount = &first
	} else {
		e.CreditAccount = &first
	}

	second, verr := parseAccountID(tokenAt(tokens, secondAccountIdx), secondSide)
	if verr != nil {
		return "", "", verr
	}
	if secondAccountIdx == debitIdx {
		e.DebitAccount = &second
	} else {
		e.CreditAccount = &second
	}

	return *e.DebitAccount, *e.CreditAccount, nil
}
