package instruction

import (
	"github.com/shopspring/decimal"

	"payinstr/internal/domain"
)

// echo carries the instruction fields recovered before a parse failure so
// the response can report everything that was understood.
type echo struct {
	Type          *string
	Amount        *int64
	Currency      *string
	DebitAccount  *string
	CreditAccount *string
	ExecuteBy     *string
}

func echoFromParsed(parsed *domain.ParsedInstruction) *echo {
	typ := string(parsed.Type)
	return &echo{
		Type:          &typ,
		Amount:        &parsed.Amount,
		Currency:      &parsed.Currency,
		DebitAccount:  &parsed.DebitAccount,
		CreditAccount: &parsed.CreditAccount,
		ExecuteBy:     parsed.ExecuteBy,
	}
}

// unparseableResponse is the degenerate verdict for an empty instruction or
// an unrecognized type: every instruction field is null and no accounts are
// reported.
func unparseableResponse() *domain.Response {
	return &domain.Response{
		Status:       domain.StatusFailed,
		StatusReason: "Instruction could not be parsed",
		StatusCode:   domain.CodeUnparseable,
		Accounts:     []domain.AccountSnapshot{},
	}
}

// failedResponse assembles a failed verdict from whatever was parsed before
// the failing stage.
func failedResponse(e *echo, verr *domain.ValidationError, snaps []domain.AccountSnapshot) *domain.Response {
	if snaps == nil {
		snaps = []domain.AccountSnapshot{}
	}
	return &domain.Response{
		Type:          e.Type,
		Amount:        e.Amount,
		Currency:      e.Currency,
		DebitAccount:  e.DebitAccount,
		CreditAccount: e.CreditAccount,
		ExecuteBy:     e.ExecuteBy,
		Status:        domain.StatusFailed,
		StatusReason:  verr.Message,
		StatusCode:    verr.Code,
		Accounts:      snaps,
	}
}

// buildResponse assembles the final verdict for a fully parsed instruction.
// Balance deltas are applied only for an immediately successful transfer;
// pending and failed verdicts leave every snapshot at its balance_before.
func buildResponse(parsed *domain.ParsedInstruction, v verdict) *domain.Response {
	snaps := v.accounts
	if v.status == domain.StatusSuccessful {
		snaps = applyTransfer(parsed, snaps)
	}

	e := echoFromParsed(parsed)
	return &domain.Response{
		Type:          e.Type,
		Amount:        e.Amount,
		Currency:      e.Currency,
		DebitAccount:  e.DebitAccount,
		CreditAccount: e.CreditAccount,
		ExecuteBy:     e.ExecuteBy,
		Status:        v.status,
		StatusReason:  v.reason,
		StatusCode:    v.code,
		Accounts:      snaps,
	}
}

// applyTransfer recomputes balances from balance_before through decimal
// arithmetic so the debit and credit deltas are exact and conservation of
// funds holds bit-for-bit.
func applyTransfer(parsed *domain.ParsedInstruction, snaps []domain.AccountSnapshot) []domain.AccountSnapshot {
	amount := decimal.NewFromInt(parsed.Amount)

	out := make([]domain.AccountSnapshot, len(snaps))
	for i, s := range snaps {
		switch s.ID {
		case parsed.DebitAccount:
			s.Balance, _ = decimal.NewFromFloat(s.BalanceBefore).Sub(amount).Float64()
		case parsed.CreditAccount:
			if isFinite(s.BalanceBefore) {
				s.Balance, _ = decimal.NewFromFloat(s.BalanceBefore).Add(amount).Float64()
			}
		}
		out[i] = s
	}
	return out
}
