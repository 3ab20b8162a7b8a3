package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// AccountId is a registrar-style account name, also used to identify
// collaborator contracts (nft collections, fungible token ledgers).
type AccountId string

func (a AccountId) String() string {
	return string(a)
}

func (a AccountId) ToLower() AccountId {
	return AccountId(strings.ToLower(string(a)))
}

func (a AccountId) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a AccountId) Ptr() *AccountId {
	return &a
}

func (a AccountId) IsEmpty() bool {
	return len(a) == 0
}

func (a AccountId) Equals(b AccountId) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

var accountIdPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// IsValid reports whether the account id matches the registrar account
// format. The format never contains ':', which keeps composite listing ids
// unambiguous.
func (a AccountId) IsValid() bool {
	if len(a) < 2 || len(a) > 64 {
		return false
	}
	return accountIdPattern.MatchString(string(a))
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// TokenAmount is a u128-scale integer carried as a decimal string, both on
// the wire and in storage. Use Decimal for arithmetic and comparison.
type TokenAmount string

func (t TokenAmount) String() string {
	return string(t)
}

func (t TokenAmount) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(t))
	if err != nil {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	if d.Round(0).Cmp(d) != 0 {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	return d, nil
}

// DecimalOrZero is for fields populated by this service itself, where a parse
// failure indicates corrupted storage rather than bad input.
func (t TokenAmount) DecimalOrZero() decimal.Decimal {
	d, err := t.Decimal()
	if err != nil {
		return decimal.Zero
	}
	return d
}

func AmountFromDecimal(d decimal.Decimal) TokenAmount {
	return TokenAmount(d.String())
}
