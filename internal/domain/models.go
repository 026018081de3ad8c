// Package domain defines the wire and domain types of the payment
// instruction engine.
package domain

// InstructionType identifies the direction an instruction is phrased in.
type InstructionType string

const (
	TypeDebit  InstructionType = "DEBIT"
	TypeCredit InstructionType = "CREDIT"
)

// Status represents the final state of a processed instruction.
type Status string

const (
	StatusSuccessful Status = "successful"
	StatusPending    Status = "pending"
	StatusFailed     Status = "failed"
)

// Account is a caller-supplied account snapshot. The engine never mutates
// these; all balance math happens on derived AccountSnapshot values.
type Account struct {
	ID       string  `json:"id" validate:"required"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency" validate:"required"`
}

// AccountSnapshot is the point-in-time copy of an account reported back to
// the caller. Balance is only ever adjusted for an immediately successful
// transfer; BalanceBefore never changes within a call.
type AccountSnapshot struct {
	ID            string  `json:"id"`
	Balance       float64 `json:"balance"`
	BalanceBefore float64 `json:"balance_before"`
	Currency      string  `json:"currency"`
}

// ParsedInstruction is a fully parsed and typed payment instruction.
type ParsedInstruction struct {
	Type          InstructionType
	Amount        int64
	Currency      string
	DebitAccount  string
	CreditAccount string
	ExecuteBy     *string
}

// ValidationError is the terminal artifact of any failed pipeline stage.
type ValidationError struct {
	Code    string
	Message string
}

// Request is the engine's input: accounts supplied in-band plus the raw
// instruction sentence.
type Request struct {
	Accounts    []Account `json:"accounts" validate:"required,dive"`
	Instruction string    `json:"instruction"`
}

// Response is the structured verdict for one instruction. Instruction
// fields are nil when parsing never recovered them.
type Response struct {
	Type          *string           `json:"type"`
	Amount        *int64            `json:"amount"`
	Currency      *string           `json:"currency"`
	DebitAccount  *string           `json:"debit_account"`
	CreditAccount *string           `json:"credit_account"`
	ExecuteBy     *string           `json:"execute_by"`
	Status        Status            `json:"status"`
	StatusReason  string            `json:"status_reason"`
	StatusCode    string            `json:"status_code"`
	Accounts      []AccountSnapshot `json:"accounts"`
}
