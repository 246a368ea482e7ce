package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_RecordsStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	n, err := w.Write([]byte("not found"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 9 {
		t.Errorf("Write() = %d, want 9", n)
	}

	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", w.StatusCode())
	}
	if w.BytesWritten() != 9 {
		t.Errorf("BytesWritten() = %d, want 9", w.BytesWritten())
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("underlying code = %d, want 404", rec.Code)
	}
}

func TestWrap_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	_, _ = w.Write([]byte("body"))
	if w.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want 200", w.StatusCode())
	}
}

func TestWrap_IgnoresDuplicateWriteHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusBadRequest)
	w.WriteHeader(http.StatusInternalServerError)

	if w.StatusCode() != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d, want the first code written", w.StatusCode())
	}
}
