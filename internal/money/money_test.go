package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avoronov/moneta/internal/money"
)

func TestRoundHalfUp(t *testing.T) {
	type testCase struct {
		name   string
		value  string
		places int32
		want   string
	}

	tests := []testCase{
		{name: "HalfCentRoundsUp", value: "2.005", places: 2, want: "2.01"},
		{name: "BelowHalfRoundsDown", value: "2.004", places: 2, want: "2"},
		{name: "ExactValueUnchanged", value: "50", places: 2, want: "50"},
		{name: "NegativeHalfAwayFromZero", value: "-2.005", places: 2, want: "-2.01"},
		{name: "ZeroPlaces", value: "2.5", places: 0, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.value)
			got := money.RoundHalfUp(d, tt.places)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestPercentOf(t *testing.T) {
	type testCase struct {
		name   string
		amount string
		total  string
		want   string
	}

	tests := []testCase{
		{name: "Half", amount: "50", total: "100", want: "50"},
		{name: "RepeatingFraction", amount: "50", total: "70", want: "71.43"},
		{name: "Complement", amount: "20", total: "70", want: "28.57"},
		{name: "ZeroTotal", amount: "123.45", total: "0", want: "0"},
		{name: "ZeroTotalNegativeAmount", amount: "-10", total: "0", want: "0"},
		{name: "NegativeAmount", amount: "-25", total: "100", want: "-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.PercentOf(
				decimal.RequireFromString(tt.amount),
				decimal.RequireFromString(tt.total),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}
