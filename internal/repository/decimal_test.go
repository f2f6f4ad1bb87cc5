package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

type balanceDoc struct {
	Balance decimal.Decimal `bson:"balance"`
}

func TestDecimalCodecRoundTrip(t *testing.T) {
	registry := decimalRegistry()

	for _, raw := range []string{"0", "100.00", "150.50", "0.01", "-42.42", "999999999.999"} {
		want := decimal.RequireFromString(raw)

		data, err := bson.MarshalWithRegistry(registry, balanceDoc{Balance: want})
		if err != nil {
			t.Fatalf("marshal %s: %v", raw, err)
		}

		var got balanceDoc
		if err := bson.UnmarshalWithRegistry(registry, data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if !got.Balance.Equal(want) {
			t.Errorf("round trip of %s produced %s", want, got.Balance)
		}
	}
}

func TestDecimalCodecDecodesLegacyRepresentations(t *testing.T) {
	registry := decimalRegistry()

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "12.34", "12.34"},
		{"int32", int32(7), "7"},
		{"int64", int64(9000), "9000"},
	}

	for _, tc := range cases {
		data, err := bson.MarshalWithRegistry(registry, bson.M{"balance": tc.value})
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}

		var got balanceDoc
		if err := bson.UnmarshalWithRegistry(registry, data, &got); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if got.Balance.String() != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got.Balance, tc.want)
		}
	}
}
