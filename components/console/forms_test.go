package console

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateRequiredField(t *testing.T) {
	ctrl := newTestController(t, Options{})
	form := ctrl.NewForm("register",
		&Field{Name: "name", Type: FieldText, Required: true},
		&Field{Name: "notes", Type: FieldText},
	)

	if form.Validate() {
		t.Fatalf("expected validation failure")
	}
	if got := form.Field("name").Error; got != "This field is required" {
		t.Fatalf("unexpected message %q", got)
	}
	if form.Field("notes").Error != "" {
		t.Fatalf("optional empty field should pass")
	}

	form.Field("name").Value = "Farm Fresh Ltd"
	if !form.Validate() {
		t.Fatalf("expected validation success")
	}
	if form.Field("name").Error != "" {
		t.Fatalf("expected error cleared on revalidation")
	}
}

func TestValidateEmailField(t *testing.T) {
	field := &Field{Name: "email", Type: FieldEmail, Required: true, Value: "a@b.c"}
	form := &Form{Name: "contact", Fields: []*Field{field}}
	if !form.Validate() {
		t.Fatalf("expected %q to pass, got %q", field.Value, field.Error)
	}

	field.Value = "abc"
	if form.Validate() {
		t.Fatalf("expected %q to fail", field.Value)
	}
	if field.Error != "Please enter a valid email address" {
		t.Fatalf("unexpected message %q", field.Error)
	}
}

func TestValidateNumberBounds(t *testing.T) {
	field := &Field{Name: "quantity", Type: FieldNumber, Min: floatPtr(5), Value: "4"}
	form := &Form{Name: "shipment", Fields: []*Field{field}}

	if form.Validate() {
		t.Fatalf("expected 4 to fail with min 5")
	}
	if !strings.Contains(field.Error, "5") {
		t.Fatalf("expected message to contain the bound, got %q", field.Error)
	}

	field.Value = "5"
	if !form.Validate() {
		t.Fatalf("expected 5 to pass, got %q", field.Error)
	}

	field.Max = floatPtr(10)
	field.Value = "11"
	if form.Validate() {
		t.Fatalf("expected 11 to fail with max 10")
	}
	if !strings.Contains(field.Error, "10") {
		t.Fatalf("expected message to contain the bound, got %q", field.Error)
	}

	field.Value = "not-a-number"
	if form.Validate() {
		t.Fatalf("expected non-numeric value to fail")
	}
}

func TestValidatePasswordConfirmation(t *testing.T) {
	password := &Field{Name: "password", Type: FieldPassword, Required: true, Value: "s3cret!pass"}
	confirm := &Field{Name: "confirm", Type: FieldPassword, Required: true, Value: "different"}
	form := &Form{
		Name:         "account",
		Fields:       []*Field{password, confirm},
		ConfirmPairs: [][2]string{{"password", "confirm"}},
	}

	if form.Validate() {
		t.Fatalf("expected mismatch to fail")
	}
	if confirm.Error != "Passwords do not match" {
		t.Fatalf("unexpected message %q", confirm.Error)
	}

	confirm.Value = password.Value
	if !form.Validate() {
		t.Fatalf("expected matching passwords to pass")
	}
}

func TestBeginSubmitBlocksInvalidForm(t *testing.T) {
	form := &Form{
		Name:            "register",
		Fields:          []*Field{{Name: "name", Required: true}},
		SubmitLabel:     "Create Record",
		ProcessingLabel: "Processing...",
	}
	if form.BeginSubmit() {
		t.Fatalf("expected submit blocked by validation")
	}
	if form.Processing {
		t.Fatalf("invalid form must not enter processing state")
	}
}

func TestBeginSubmitTogglesProcessingState(t *testing.T) {
	form := &Form{
		Name:            "register",
		Fields:          []*Field{{Name: "name", Required: true, Value: "ok"}},
		SubmitLabel:     "Create Record",
		ProcessingLabel: "Processing...",
	}
	if !form.BeginSubmit() {
		t.Fatalf("expected submit to proceed")
	}
	if !form.Processing || form.SubmitLabel != "Processing..." {
		t.Fatalf("expected processing state, got %+v", form)
	}
	if form.BeginSubmit() {
		t.Fatalf("expected double submit blocked")
	}
	form.EndSubmit()
	if form.Processing || form.SubmitLabel != "Create Record" {
		t.Fatalf("expected original label restored, got %q", form.SubmitLabel)
	}
}

func TestValidatePasswordConfirmationOverridesFieldError(t *testing.T) {
	password := &Field{Name: "password", Type: FieldPassword, Required: true, Value: "s3cret!pass"}
	confirm := &Field{Name: "confirm", Type: FieldPassword, Required: true}
	form := &Form{
		Name:         "account",
		Fields:       []*Field{password, confirm},
		ConfirmPairs: [][2]string{{"password", "confirm"}},
	}

	if form.Validate() {
		t.Fatalf("expected empty confirmation to fail")
	}
	if confirm.Error != "Passwords do not match" {
		t.Fatalf("mismatch must win over the required message, got %q", confirm.Error)
	}
}
