package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAccount struct {
	ID       string `validate:"required"`
	Currency string `validate:"required"`
}

type testRequest struct {
	Accounts    []testAccount `validate:"required,dive"`
	Instruction string
}

func TestValidateStructuredValid(t *testing.T) {
	v := New()

	errs := v.ValidateStructured(&testRequest{
		Accounts:    []testAccount{{ID: "A1", Currency: "NGN"}},
		Instruction: "DEBIT 100 NGN",
	})

	assert.Nil(t, errs)
}

func TestValidateStructuredMissingRequired(t *testing.T) {
	v := New()

	errs := v.ValidateStructured(&testRequest{})

	require.NotNil(t, errs)
	assert.Equal(t, "This field is required", errs["Accounts"])
}

func TestValidateStructuredDivesIntoElements(t *testing.T) {
	v := New()

	errs := v.ValidateStructured(&testRequest{
		Accounts: []testAccount{{ID: "A1"}},
	})

	require.NotNil(t, errs)
	assert.Equal(t, "This field is required", errs["Currency"])
}

func TestValidateStructuredEmptyInstructionAllowed(t *testing.T) {
	v := New()

	// An empty instruction is a domain concern, not a shape error.
	errs := v.ValidateStructured(&testRequest{
		Accounts: []testAccount{{ID: "A1", Currency: "NGN"}},
	})

	assert.Nil(t, errs)
}
