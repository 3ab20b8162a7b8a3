package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountIdEquals(t *testing.T) {
	req := require.New(t)

	req.True(AccountId("alice").Equals("Alice"))
	req.True(AccountId("usdt.tether-token").Equals("usdt.tether-token"))
	req.False(AccountId("alice").Equals("bob"))
}

func TestTokenAmountDecimal(t *testing.T) {
	req := require.New(t)

	d, err := TokenAmount("340282366920938463463374607431768211455").Decimal()
	req.NoError(err)
	req.Equal("340282366920938463463374607431768211455", d.String())

	d, err = TokenAmount("0").Decimal()
	req.NoError(err)
	req.True(d.IsZero())

	_, err = TokenAmount("1.5").Decimal()
	req.Equal(ErrInvalidAmountFormat, err)

	_, err = TokenAmount("abc").Decimal()
	req.Equal(ErrInvalidAmountFormat, err)

	_, err = TokenAmount("").Decimal()
	req.Equal(ErrInvalidAmountFormat, err)
}

func TestTokenAmountDecimalOrZero(t *testing.T) {
	req := require.New(t)

	req.True(TokenAmount("garbage").DecimalOrZero().IsZero())
	req.Equal("15", TokenAmount("15").DecimalOrZero().String())
}
