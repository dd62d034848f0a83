package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/pkg/validate"
)

func TestValidRegisterInput(t *testing.T) {
	errs := validate.Struct(models.RegisterInput{
		Email:    "jo@example.com",
		Password: "secret123",
		Name:     "Jo",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(models.RegisterInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	// Empty profile update is fine: every field is nullable.
	if errs := validate.Struct(models.ProfileInput{}); validate.HasErrors(errs) {
		t.Errorf("expected empty profile input to pass, got: %v", errs)
	}
	// But a present field still has to pass its remaining rules.
	if errs := validate.Struct(models.ProfileInput{Email: "nope"}); !validate.HasErrors(errs) {
		t.Error("expected bad email in profile input to fail")
	}
}

func TestStringLengthBounds(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "x"}); !validate.HasErrors(errs) {
		t.Error("expected short name to fail")
	}
	if errs := validate.Struct(in{Name: "toolongname"}); !validate.HasErrors(errs) {
		t.Error("expected long name to fail")
	}
	if errs := validate.Struct(in{Name: "jojo"}); validate.HasErrors(errs) {
		t.Errorf("expected name to pass: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	if errs := validate.Struct(models.ProductInput{Name: "shoe", Price: 0, CategoryID: 1}); !validate.HasErrors(errs) {
		t.Error("expected zero price to fail")
	}
	if errs := validate.Struct(models.ProductInput{Name: "shoe", Price: -5, CategoryID: 1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(models.ProductInput{Name: "shoe", Price: 10, CategoryID: 1}); validate.HasErrors(errs) {
		t.Errorf("expected valid product to pass: %v", errs)
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Image string `json:"image_url" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Image: "not a url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
	if errs := validate.Struct(in{Image: "https://cdn.example.com/p.png"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass: %v", errs)
	}
}
