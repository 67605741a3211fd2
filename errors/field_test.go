package errors

import "testing"

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("MaxCollectable", ErrConfiguration, "must be positive"),
		Field("AssetID", ErrCurrency, "ticker %q", "x"),
		Field("Metadata", nil, "ignored"),
	)

	if errs := FieldErrors(err, "MaxCollectable"); len(errs) != 1 || !ErrConfiguration.Is(errs[0]) {
		t.Fatalf("unexpected MaxCollectable errors: %v", errs)
	}
	if errs := FieldErrors(err, "AssetID"); len(errs) != 1 || !ErrCurrency.Is(errs[0]) {
		t.Fatalf("unexpected AssetID errors: %v", errs)
	}
	if errs := FieldErrors(err, "Metadata"); len(errs) != 0 {
		t.Fatalf("nil field error must be dropped: %v", errs)
	}
	if got, want := Field("Amount", ErrAmount, "").Error(), `field "Amount": invalid amount`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestAppend(t *testing.T) {
	if Append() != nil || Append(nil, nil) != nil {
		t.Fatal("nothing to append must be nil")
	}
	if err := Append(nil, ErrEmpty); err != ErrEmpty {
		t.Fatalf("single error must be returned as is: %v", err)
	}
	nested := Append(Append(ErrEmpty, ErrAmount), ErrInput)
	if n := len(nested.(multiErr)); n != 3 {
		t.Fatalf("want flattened multi error with 3 items, got %d", n)
	}
}
