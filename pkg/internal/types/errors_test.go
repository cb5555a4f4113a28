package types_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yeisme/cloudvault/pkg/internal/types"
)

func TestErrorKindsAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   types.Kind
		status int
	}{
		{types.InvalidArgument("bad input"), types.KindInvalidArgument, http.StatusBadRequest},
		{types.NotFound("missing %s", "x"), types.KindNotFound, http.StatusNotFound},
		{types.Conflict("dup"), types.KindConflict, http.StatusConflict},
		{types.UploadFailed("s3 down"), types.KindUploadFailed, http.StatusBadGateway},
		{types.NoOp("nothing changed"), types.KindNoOp, http.StatusNotFound},
	}

	for _, tc := range cases {
		if got := types.KindOf(tc.err); got != tc.kind {
			t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.kind)
		}

		if got := types.StatusOf(tc.err); got != tc.status {
			t.Errorf("StatusOf(%v) = %d, want %d", tc.err, got, tc.status)
		}

		if !types.IsKind(tc.err, tc.kind) {
			t.Errorf("IsKind(%v, %s) = false", tc.err, tc.kind)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	// 包装后的错误依然能提取类别
	wrapped := fmt.Errorf("list folder: %w", types.NotFound("folder f1 not found"))

	if !types.IsKind(wrapped, types.KindNotFound) {
		t.Fatal("wrapped error should keep its kind")
	}

	if types.StatusOf(wrapped) != http.StatusNotFound {
		t.Fatalf("status = %d", types.StatusOf(wrapped))
	}
}

func TestErrorUnknown(t *testing.T) {
	plain := errors.New("boom")

	if types.KindOf(plain) != "" {
		t.Fatalf("kind of plain error = %q", types.KindOf(plain))
	}

	if types.StatusOf(plain) != http.StatusInternalServerError {
		t.Fatalf("status of plain error = %d", types.StatusOf(plain))
	}

	if types.StatusOf(nil) != http.StatusInternalServerError {
		t.Fatal("nil error should map to 500")
	}
}

func TestErrorMessageFormat(t *testing.T) {
	err := types.NotFound("file %s not found", "f1")

	if err.Error() != "not_found: file f1 not found" {
		t.Fatalf("message = %q", err.Error())
	}
}
