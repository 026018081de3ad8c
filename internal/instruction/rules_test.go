package instruction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payinstr/internal/domain"
)

func parsedTransfer(amount int64, currency, debit, credit string, executeBy *string) *domain.ParsedInstruction {
	return &domain.ParsedInstruction{
		Type:          domain.TypeDebit,
		Amount:        amount,
		Currency:      currency,
		DebitAccount:  debit,
		CreditAccount: credit,
		ExecuteBy:     executeBy,
	}
}

func TestFindAccount(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 500, Currency: "NGN"},
		{ID: "A1", Balance: 999, Currency: "USD"},
		{ID: "a1", Balance: 10, Currency: "NGN"},
	}

	// First match wins, lookup is case-sensitive.
	acc := findAccount(accounts, "A1")
	require.NotNil(t, acc)
	assert.Equal(t, 500.0, acc.Balance)

	acc = findAccount(accounts, "a1")
	require.NotNil(t, acc)
	assert.Equal(t, 10.0, acc.Balance)

	assert.Nil(t, findAccount(accounts, "A2"))
}

func TestEvaluateBothAccountsMissing(t *testing.T) {
	v := evaluate(parsedTransfer(100, "NGN", "X1", "X2", nil), []domain.Account{}, "2024-06-15")

	assert.Equal(t, domain.StatusFailed, v.status)
	assert.Equal(t, domain.CodeAccountNotFound, v.code)
	assert.Contains(t, v.reason, "'X1'")
	assert.Contains(t, v.reason, "'X2'")
	assert.Empty(t, v.accounts)
}

func TestEvaluateOneAccountMissing(t *testing.T) {
	accounts := []domain.Account{{ID: "A2", Balance: 50, Currency: "NGN"}}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.CodeAccountNotFound, v.code)
	assert.Contains(t, v.reason, "debit account 'A1'")
	// The found side is still reported.
	require.Len(t, v.accounts, 1)
	assert.Equal(t, "A2", v.accounts[0].ID)
	assert.Equal(t, 50.0, v.accounts[0].Balance)
}

func TestEvaluateAccountCurrencyMismatch(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 500, Currency: "NGN"},
		{ID: "A2", Balance: 50, Currency: "USD"},
	}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.CodeCurrencyMismatch, v.code)
	assert.Len(t, v.accounts, 2)
}

func TestEvaluateUnsupportedAccountCurrency(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 500, Currency: "EUR"},
		{ID: "A2", Balance: 50, Currency: "EUR"},
	}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.CodeUnsupportedCurrency, v.code)
	assert.Contains(t, v.reason, "'EUR'")
}

func TestEvaluateInstructionCurrencyMismatch(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 500, Currency: "USD"},
		{ID: "A2", Balance: 50, Currency: "USD"},
	}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.CodeCurrencyMismatch, v.code)
	assert.Contains(t, v.reason, "instruction currency 'NGN'")
}

func TestEvaluateSelfTransfer(t *testing.T) {
	accounts := []domain.Account{{ID: "A1", Balance: 500, Currency: "NGN"}}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A1", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.CodeSelfTransfer, v.code)
	// The account plays both roles but appears once.
	assert.Len(t, v.accounts, 1)
}

func TestEvaluateInsufficientFunds(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 50, Currency: "NGN"},
		{ID: "A2", Balance: 50, Currency: "NGN"},
	}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.StatusFailed, v.status)
	assert.Equal(t, domain.CodeInsufficientFunds, v.code)
	assert.Contains(t, v.reason, "available 50")
	assert.Contains(t, v.reason, "required 100")
	for _, s := range v.accounts {
		assert.Equal(t, s.BalanceBefore, s.Balance)
	}
}

func TestEvaluateNonFiniteBalanceFailsFundsCheck(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: math.NaN(), Currency: "NGN"},
		{ID: "A2", Balance: 50, Currency: "NGN"},
	}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.CodeInsufficientFunds, v.code)
}

func TestEvaluateExactBalanceIsSufficient(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 100, Currency: "NGN"},
		{ID: "A2", Balance: 0, Currency: "NGN"},
	}

	v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", nil), accounts, "2024-06-15")

	assert.Equal(t, domain.StatusSuccessful, v.status)
	assert.Equal(t, domain.CodeSuccessful, v.code)
}

func TestEvaluateStatusFromExecuteBy(t *testing.T) {
	accounts := []domain.Account{
		{ID: "A1", Balance: 500, Currency: "NGN"},
		{ID: "A2", Balance: 50, Currency: "NGN"},
	}
	today := "2024-06-15"

	tests := []struct {
		name       string
		executeBy  *string
		wantStatus domain.Status
		wantCode   string
	}{
		{"no date is immediate", nil, domain.StatusSuccessful, domain.CodeSuccessful},
		{"future date is pending", strPtr("2024-06-16"), domain.StatusPending, domain.CodePending},
		{"far future is pending", strPtr("2030-01-01"), domain.StatusPending, domain.CodePending},
		{"today is immediate", strPtr("2024-06-15"), domain.StatusSuccessful, domain.CodeSuccessful},
		{"past date is immediate", strPtr("2020-01-01"), domain.StatusSuccessful, domain.CodeSuccessful},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := evaluate(parsedTransfer(100, "NGN", "A1", "A2", tt.executeBy), accounts, today)
			assert.Equal(t, tt.wantStatus, v.status)
			assert.Equal(t, tt.wantCode, v.code)
		})
	}
}

func TestSnapshotUppercasesCurrencyAndCopies(t *testing.T) {
	acc := domain.Account{ID: "A1", Balance: 500, Currency: "ngn"}

	s := snapshot(&acc)

	assert.Equal(t, "NGN", s.Currency)
	assert.Equal(t, 500.0, s.Balance)
	assert.Equal(t, 500.0, s.BalanceBefore)
	// The caller's account is untouched.
	assert.Equal(t, "ngn", acc.Currency)
}

func strPtr(s string) *string { return &s }
