package instruction

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"payinstr/internal/domain"
)

// verdict is the outcome of the business-rule chain for a parsed
// instruction, before response assembly.
type verdict struct {
	status   domain.Status
	reason   string
	code     string
	accounts []domain.AccountSnapshot
}

// findAccount performs an order-preserving, case-sensitive lookup; the
// first match wins and absence is an explicit nil, never a sentinel value.
func findAccount(accounts []domain.Account, id string) *domain.Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

// snapshot derives a fresh copy-on-read view of an account. The caller's
// account value is never touched.
func snapshot(acc *domain.Account) domain.AccountSnapshot {
	return domain.AccountSnapshot{
		ID:            acc.ID,
		Balance:       acc.Balance,
		BalanceBefore: acc.Balance,
		Currency:      strings.ToUpper(acc.Currency),
	}
}

// relevantSnapshots returns the debit and, when distinct, credit snapshot.
// An account that is both sides of the transfer appears once.
func relevantSnapshots(debit, credit *domain.Account) []domain.AccountSnapshot {
	snaps := []domain.AccountSnapshot{snapshot(debit)}
	if credit.ID != debit.ID {
		snaps = append(snaps, snapshot(credit))
	}
	return snaps
}

// evaluate runs the business-rule chain over a parsed instruction and the
// caller-supplied accounts. today is the current UTC calendar date in
// YYYY-MM-DD form. The first failing rule wins.
func evaluate(parsed *domain.ParsedInstruction, accounts []domain.Account, today string) verdict {
	debit := findAccount(accounts, parsed.DebitAccount)
	credit := findAccount(accounts, parsed.CreditAccount)

	// Existence. With one side missing, the found side's snapshot is still
	// reported so the caller can see what the engine matched.
	switch {
	case debit == nil && credit == nil:
		return failedVerdict(domain.CodeAccountNotFound,
			fmt.Sprintf("neither debit account '%s' nor credit account '%s' exists", parsed.DebitAccount, parsed.CreditAccount),
			nil)
	case debit == nil:
		return failedVerdict(domain.CodeAccountNotFound,
			fmt.Sprintf("debit account '%s' does not exist", parsed.DebitAccount),
			[]domain.AccountSnapshot{snapshot(credit)})
	case credit == nil:
		return failedVerdict(domain.CodeAccountNotFound,
			fmt.Sprintf("credit account '%s' does not exist", parsed.CreditAccount),
			[]domain.AccountSnapshot{snapshot(debit)})
	}

	snaps := relevantSnapshots(debit, credit)

	// Currency agreement: both accounts and the instruction must agree on a
	// supported currency.
	debitCurrency := strings.ToUpper(debit.Currency)
	creditCurrency := strings.ToUpper(credit.Currency)
	if debitCurrency != creditCurrency {
		return failedVerdict(domain.CodeCurrencyMismatch,
			fmt.Sprintf("debit account currency '%s' does not match credit account currency '%s'", debitCurrency, creditCurrency),
			snaps)
	}
	if !domain.IsSupportedCurrency(debitCurrency) {
		return failedVerdict(domain.CodeUnsupportedCurrency,
			fmt.Sprintf("unsupported currency '%s'", debitCurrency),
			snaps)
	}
	if parsed.Currency != debitCurrency {
		return failedVerdict(domain.CodeCurrencyMismatch,
			fmt.Sprintf("instruction currency '%s' does not match account currency '%s'", parsed.Currency, debitCurrency),
			snaps)
	}

	if parsed.DebitAccount == parsed.CreditAccount {
		return failedVerdict(domain.CodeSelfTransfer,
			"debit and credit accounts must be different",
			snaps)
	}

	// Sufficient funds. A non-finite balance is not a number the debit
	// account can spend from, so it fails here rather than in the money
	// math below.
	amount := decimal.NewFromInt(parsed.Amount)
	if !isFinite(debit.Balance) || decimal.NewFromFloat(debit.Balance).LessThan(amount) {
		return failedVerdict(domain.CodeInsufficientFunds,
			fmt.Sprintf("insufficient funds in debit account '%s': available %s, required %d",
				debit.ID, formatBalance(debit.Balance), parsed.Amount),
			snaps)
	}

	// Status determination. The fixed-width ISO format makes lexicographic
	// comparison equivalent to date comparison.
	if parsed.ExecuteBy != nil && *parsed.ExecuteBy > today {
		return verdict{
			status:   domain.StatusPending,
			reason:   fmt.Sprintf("Transaction pending execution on %s", *parsed.ExecuteBy),
			code:     domain.CodePending,
			accounts: snaps,
		}
	}

	return verdict{
		status:   domain.StatusSuccessful,
		reason:   "Transaction executed successfully",
		code:     domain.CodeSuccessful,
		accounts: snaps,
	}
}

func failedVerdict(code, reason string, snaps []domain.AccountSnapshot) verdict {
	if snaps == nil {
		snaps = []domain.AccountSnapshot{}
	}
	return verdict{
		status:   domain.StatusFailed,
		reason:   reason,
		code:     code,
		accounts: snaps,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func formatBalance(f float64) string {
	if !isFinite(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return decimal.NewFromFloat(f).String()
}
