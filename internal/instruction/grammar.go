package instruction

import (
	"fmt"
	"strings"

	"payinstr/internal/domain"
)

// keywordRule pins a grammar keyword to an absolute token offset.
type keywordRule struct {
	idx     int
	keyword string
}

// Positional grammar per instruction type. The instruction is a rigid
// template: indices are part of the contract, not an implementation detail.
var grammarByType = map[domain.InstructionType][]keywordRule{
	domain.TypeDebit: {
		{idx: 3, keyword: "FROM"},
		{idx: 4, keyword: "ACCOUNT"},
		{idx: 6, keyword: "FOR"},
		{idx: 7, keyword: "CREDIT"},
		{idx: 8, keyword: "TO"},
		{idx: 9, keyword: "ACCOUNT"},
	},
	domain.TypeCredit: {
		{idx: 3, keyword: "TO"},
		{idx: 4, keyword: "ACCOUNT"},
		{idx: 6, keyword: "FOR"},
		{idx: 7, keyword: "DEBIT"},
		{idx: 8, keyword: "FROM"},
		{idx: 9, keyword: "ACCOUNT"},
	},
}

// instructionType reads the intent from token 0. Only DEBIT and CREDIT are
// recognized; anything else leaves the instruction unparseable.
func instructionType(tokens []string) (domain.InstructionType, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	switch strings.ToUpper(tokens[0]) {
	case "DEBIT":
		return domain.TypeDebit, true
	case "CREDIT":
		return domain.TypeCredit, true
	}
	return "", false
}

// checkKeywords validates the fixed positional grammar for typ. All missing
// keywords are reported together before any mismatch is considered; a
// mismatch within edit distance 1 of the expected keyword carries a
// suggestion.
func checkKeywords(tokens []string, typ domain.InstructionType) *domain.ValidationError {
	var missing []string
	var mismatched []string

	for _, rule := range grammarByType[typ] {
		if len(tokens) < rule.idx+1 {
			missing = append(missing, fmt.Sprintf("missing keyword '%s' at position %d", rule.keyword, rule.idx))
			continue
		}

		found := tokens[rule.idx]
		if strings.EqualFold(found, rule.keyword) {
			continue
		}

		msg := fmt.Sprintf("expected keyword '%s' at position %d, found '%s'", rule.keyword, rule.idx, found)
		if nearMiss(strings.ToUpper(found), rule.keyword) {
			msg += fmt.Sprintf(" - did you mean '%s'?", rule.keyword)
		}
		mismatched = append(mismatched, msg)
	}

	if len(missing) > 0 {
		return &domain.ValidationError{Code: domain.CodeMissingKeyword, Message: strings.Join(missing, "; ")}
	}
	if len(mismatched) > 0 {
		return &domain.ValidationError{Code: domain.CodeKeywordMismatch, Message: strings.Join(mismatched, "; ")}
	}
	return nil
}
