package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAccount() {
	tests := []struct {
		desc       string
		accountId  string
		expIsValid bool
	}{
		{
			desc:       "too short",
			accountId:  "a",
			expIsValid: false,
		},
		{
			desc:       "valid top level account",
			accountId:  "alice",
			expIsValid: true,
		},
		{
			desc:       "valid sub account",
			accountId:  "usdt.tether-token",
			expIsValid: true,
		},
		{
			desc:       "uppercase is invalid",
			accountId:  "Alice",
			expIsValid: false,
		},
		{
			desc:       "delimiter char is invalid",
			accountId:  "market:token",
			expIsValid: false,
		},
		{
			desc:       "dangling separator",
			accountId:  "alice.",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAccount(t.accountId), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
