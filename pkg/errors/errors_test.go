package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{"message only", New(ErrCodeInternal, "boom"), "boom"},
		{"with cause", Wrap(ErrCodeSchemaLoad, "load schema", stderrors.New("eof")), "load schema: eof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructuredError_IsAndAs(t *testing.T) {
	cause := stderrors.New("missing")
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeSchemaPath, "lookup", cause))

	if !stderrors.Is(err, &StructuredError{Code: ErrCodeSchemaPath}) {
		t.Error("expected match on SCHEMA_PATH_ERROR")
	}
	if stderrors.Is(err, &StructuredError{Code: ErrCodeSchemaLoad}) {
		t.Error("unexpected match on SCHEMA_LOAD_ERROR")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}

	var se *StructuredError
	if !stderrors.As(err, &se) {
		t.Fatal("expected StructuredError")
	}
	if se.Code != ErrCodeSchemaPath {
		t.Errorf("Code = %s, want %s", se.Code, ErrCodeSchemaPath)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrCodeSchemaLoad, "x")); got != ErrCodeSchemaLoad {
		t.Errorf("CodeOf = %s, want %s", got, ErrCodeSchemaLoad)
	}
	if got := CodeOf(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain) = %s, want %s", got, ErrCodeInternal)
	}

	withCtx := WithContext(ErrCodeNotFound, "no such file", map[string]any{"path": "a.yaml"})
	if got := CodeOf(withCtx); got != ErrCodeNotFound {
		t.Errorf("CodeOf = %s, want %s", got, ErrCodeNotFound)
	}
	if withCtx.Context["path"] != "a.yaml" {
		t.Errorf("unexpected context: %v", withCtx.Context)
	}
}
