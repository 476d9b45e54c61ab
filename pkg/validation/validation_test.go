package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Name  string `validate:"required,max=5"`
	Kind  string `validate:"oneof=a b"`
	Inner inner
}

type inner struct {
	Code string `validate:"required,even_len"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	err := v.RegisterValidation("even_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	})
	if err != nil {
		t.Fatalf("RegisterValidation() error = %v", err)
	}
	return v
}

func TestTranslator_Translate(t *testing.T) {
	v := newValidate(t)
	err := v.Struct(sample{Name: "too long", Kind: "c", Inner: inner{Code: "abc"}})

	translated := Translator{Custom: map[string]string{"even_len": "%s must have even length"}}.Translate(err)

	var errs Errors
	if !errors.As(translated, &errs) {
		t.Fatalf("Translate() = %T, want Errors", translated)
	}
	if len(errs) != 3 {
		t.Fatalf("len(errs) = %d, want 3: %v", len(errs), errs)
	}

	want := map[string]string{
		"Name": "Name must be at most 5",
		"Kind": "Kind must be one of: a b",
		"Code": "Code must have even length",
	}
	for _, fe := range errs {
		if want[fe.Field] != fe.Message {
			t.Errorf("%s: message = %q, want %q", fe.Field, fe.Message, want[fe.Field])
		}
	}
	if !errs.HasField("Code") || errs.HasField("Inner") {
		t.Error("HasField() should match leaf field names")
	}
}

func TestTranslator_Namespaced(t *testing.T) {
	v := newValidate(t)
	err := v.Struct(sample{Name: "ok", Kind: "a"})

	var errs Errors
	if !errors.As(Translator{Namespaced: true}.Translate(err), &errs) {
		t.Fatal("expected Errors")
	}
	if !errs.HasField("sample.Inner.Code") {
		t.Errorf("errs = %v, want namespaced field", errs)
	}
	if !strings.Contains(errs.Error(), "Code is required") {
		t.Errorf("Error() = %q", errs.Error())
	}
}

func TestTranslator_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	if got := (Translator{}).Translate(plain); got != plain {
		t.Errorf("Translate() = %v, want original error", got)
	}
	if got := (Translator{}).Translate(nil); got != nil {
		t.Errorf("Translate(nil) = %v", got)
	}
}
