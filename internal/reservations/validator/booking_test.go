package validator

import (
	"errors"
	"strings"
	"testing"

	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	valid := func() *model.BookRequest {
		return &model.BookRequest{SpaceID: "S1", Date: "2025-06-01", SlotID: "morning", Requester: "alice"}
	}

	tests := []struct {
		name      string
		mutate    func(r *model.BookRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *model.BookRequest) {}},
		{name: "empty space left to the catalog", mutate: func(r *model.BookRequest) { r.SpaceID = "" }},
		{name: "empty slot left to the catalog", mutate: func(r *model.BookRequest) { r.SlotID = "" }},
		{name: "long slot left to the catalog", mutate: func(r *model.BookRequest) { r.SlotID = strings.Repeat("x", 65) }},
		{name: "long space left to the catalog", mutate: func(r *model.BookRequest) { r.SpaceID = strings.Repeat("s", 65) }},
		{name: "missing requester", mutate: func(r *model.BookRequest) { r.Requester = "" }, wantField: "Requester"},
		{name: "missing date", mutate: func(r *model.BookRequest) { r.Date = "" }, wantField: "Date"},
		{name: "malformed date", mutate: func(r *model.BookRequest) { r.Date = "01/06/2025" }, wantField: "Date"},
		{name: "impossible date", mutate: func(r *model.BookRequest) { r.Date = "2025-02-30" }, wantField: "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if !errs.HasField(tt.wantField) {
				t.Errorf("Validate() errors = %v, want one on %s", errs, tt.wantField)
			}
		})
	}
}
