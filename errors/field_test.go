package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		unauthorizedNameErr = Field("Name", ErrUnauthorized, "a")
		humanNameErr        = Field("Name", ErrHuman, "b")
		emptyAmountErr      = Field("Amount", ErrEmpty, "amount is required")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedNameErr,
			Field: "Name",
			Want:  []error{unauthorizedNameErr},
		},
		"two error found by the name": {
			Err:   Append(unauthorizedNameErr, emptyAmountErr, humanNameErr),
			Field: "Name",
			Want:  []error{unauthorizedNameErr, humanNameErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "Name",
			Want:  nil,
		},
		"unknown field returns nothing": {
			Err:   emptyAmountErr,
			Field: "Name",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Fatalf("want %v, got %v", tc.Want, got)
			}
		})
	}
}

func TestFieldNil(t *testing.T) {
	if err := Field("Name", nil, "ignored"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}
