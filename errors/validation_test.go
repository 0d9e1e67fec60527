package errors

import (
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		v    Validation
		want string
	}{
		{
			name: "no path",
			v:    Validation{Code: string(ErrNoRoot), Message: "document has no root element"},
			want: "[rng-no-root] document has no root element",
		},
		{
			name: "with path",
			v: Validation{
				Code:    string(ErrMissingAttribute),
				Message: "required attribute a is missing",
				Path:    "/root/child",
			},
			want: "[rng-missing-attribute] required attribute a is missing at /root/child",
		},
		{
			name: "zero value",
			v:    Validation{},
			want: "[] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorNilPointer(t *testing.T) {
	var v *Validation
	if got, want := v.Error(), "validation <nil>"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestNewValidation(t *testing.T) {
	v := NewValidation(ErrNoRoot, "document has no root element", "/")
	if v.Code != string(ErrNoRoot) {
		t.Fatalf("Code = %q, want %q", v.Code, ErrNoRoot)
	}
	if v.Message != "document has no root element" {
		t.Fatalf("Message = %q, want %q", v.Message, "document has no root element")
	}
	if v.Path != "/" {
		t.Fatalf("Path = %q, want %q", v.Path, "/")
	}
}

func TestNewValidationf(t *testing.T) {
	v := NewValidationf(ErrUnexpectedElement, "/root", "unexpected element {%s}%s", "", "child")
	if v.Code != string(ErrUnexpectedElement) {
		t.Fatalf("Code = %q, want %q", v.Code, ErrUnexpectedElement)
	}
	if v.Message != "unexpected element {}child" {
		t.Fatalf("Message = %q, want %q", v.Message, "unexpected element {}child")
	}
	if v.Path != "/root" {
		t.Fatalf("Path = %q, want %q", v.Path, "/root")
	}
}

func TestValidationListError(t *testing.T) {
	missingRoot := NewValidation(ErrNoRoot, "document has no root element", "")
	missingAttr := NewValidation(ErrMissingAttribute, "required attribute a is missing", "/foo")

	tests := []struct {
		name string
		list ValidationList
		want string
	}{
		{
			name: "empty",
			list: nil,
			want: "no validation errors",
		},
		{
			name: "single",
			list: ValidationList{missingRoot},
			want: "[rng-no-root] document has no root element",
		},
		{
			name: "multiple",
			list: ValidationList{missingRoot, missingAttr},
			want: "[rng-no-root] document has no root element (and 1 more)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsValidationsUnwrapsWrappedList(t *testing.T) {
	list := ValidationList{
		NewValidation(ErrUnexpectedElement, "unexpected element {}bar", "/foo"),
		NewValidation(ErrMissingAttribute, "required attribute a is missing", "/foo"),
	}
	wrapped := fmt.Errorf("validate document: %w", list)

	got, ok := AsValidations(wrapped)
	if !ok {
		t.Fatal("AsValidations() ok = false, want true")
	}
	if len(got) != 2 {
		t.Fatalf("AsValidations() len = %d, want 2", len(got))
	}
	if got[0].Code != string(ErrUnexpectedElement) || got[1].Code != string(ErrMissingAttribute) {
		t.Fatalf("AsValidations() codes = %v, want [%s %s]", got, ErrUnexpectedElement, ErrMissingAttribute)
	}
}

func TestAsValidationsRejectsUnrelatedError(t *testing.T) {
	if _, ok := AsValidations(fmt.Errorf("some other failure")); ok {
		t.Fatal("AsValidations() ok = true for an unrelated error, want false")
	}
}

func TestAsValidationsNilError(t *testing.T) {
	if _, ok := AsValidations(nil); ok {
		t.Fatal("AsValidations() ok = true for a nil error, want false")
	}
}
