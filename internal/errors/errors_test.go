package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "capacity exceeded",
			code:    "E001",
			wantMsg: "Attribute capacity exceeded",
			wantCat: CategoryComposition,
		},
		{
			name:    "class list on non-leaf",
			code:    "E002",
			wantMsg: "Class list applied to non-leaf target",
			wantCat: CategoryComposition,
		},
		{
			name:    "protocol error",
			code:    "E060",
			wantMsg: "Invalid patch frame",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "address %q is invalid", ":-1")
	if err.Message != `address ":-1" is invalid` {
		t.Errorf("Message = %q, want %q", err.Message, `address ":-1" is invalid`)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q, want %q", err.Category, CategoryConfig)
	}
}

func TestAttrError_Error(t *testing.T) {
	err := New("E001")
	got := err.Error()
	want := "E001: Attribute capacity exceeded"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &AttrError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestAttrError_Is(t *testing.T) {
	err := New("E003").WithDetail("handle spread twice")

	if !stderrors.Is(err, New("E003")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E001")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(err, stderrors.New("E003")) {
		t.Error("errors.Is should not match a plain error")
	}
}

func TestAttrError_WithCallSite(t *testing.T) {
	err := New("E001").WithCallSite(0)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if !strings.HasSuffix(err.Location.File, "errors_test.go") {
		t.Errorf("Location.File = %q, want this test file", err.Location.File)
	}
	if err.Location.Line <= 0 {
		t.Errorf("Location.Line = %d, want > 0", err.Location.Line)
	}
}

func TestAttrError_WithSuggestion(t *testing.T) {
	err := New("E001").WithSuggestion("Split the composition across nested components")
	if err.Suggestion != "Split the composition across nested components" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestAttrError_WithDetail(t *testing.T) {
	err := New("E001").WithDetail("27 directives, capacity 26")
	if err.Detail != "27 directives, capacity 26" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestAttrError_Wrap(t *testing.T) {
	inner := New("E002")
	outer := New("E001").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	// nil error
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	// Already AttrError
	ae := New("E001")
	if FromError(ae, "E002") != ae {
		t.Error("FromError should return AttrError as-is")
	}

	// Standard error
	stdErr := stderrors.New("test error")
	result := FromError(stdErr, "E060")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
		{
			name: "file and line",
			loc:  &Location{File: "test.go", Line: 10},
			want: "test.go:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loc.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E001").
		WithCallSite(0).
		WithSuggestion("Split the composition across nested components").
		WithExample("tree.Compose(bundle, inner, tree.WithCapacity(32))")

	formatted := err.Format()

	if !strings.Contains(formatted, "E001") {
		t.Error("Format should contain error code")
	}
	if !strings.Contains(formatted, "Attribute capacity exceeded") {
		t.Error("Format should contain error message")
	}
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Format should contain the call site")
	}
	if !strings.Contains(formatted, "Hint:") {
		t.Error("Format should contain hint")
	}
	if !strings.Contains(formatted, "Example:") {
		t.Error("Format should contain example")
	}
	if !strings.Contains(formatted, "Learn more:") {
		t.Error("Format should contain doc URL")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E001")
	err.Location = &Location{File: "test.go", Line: 10}
	compact := err.FormatCompact()

	want := "test.go:10: E001: Attribute capacity exceeded"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E001")
	err.Location = &Location{File: "test.go", Line: 10}
	json := err.FormatJSON()

	if !strings.Contains(json, `"code":"E001"`) {
		t.Error("JSON should contain code")
	}
	if !strings.Contains(json, `"category":"composition"`) {
		t.Error("JSON should contain category")
	}
	if !strings.Contains(json, `"message":"Attribute capacity exceeded"`) {
		t.Error("JSON should contain message")
	}
	if !strings.Contains(json, `"location":`) {
		t.Error("JSON should contain location")
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Error("GetAllCodes() should return codes")
	}

	found := false
	for _, code := range codes {
		if code == "E001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("E001 should be in the codes list")
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E001")
	if !ok {
		t.Error("E001 should exist")
	}
	if template.Message != "Attribute capacity exceeded" {
		t.Error("Template message mismatch")
	}

	_, ok = GetTemplate("E999")
	if ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryComposition,
		Message:  "Custom test error",
		Detail:   "This is a test error",
		DocURL:   "https://test.dev/E999",
	})

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}

	// Cleanup
	delete(registry, "E999")
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
