package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_DefaultsTo200(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	if w.StatusCode() != http.StatusOK {
		t.Errorf("got status %d, want 200 before any write", w.StatusCode())
	}
	if w.BytesWritten() != 0 {
		t.Errorf("got %d bytes, want 0 before any write", w.BytesWritten())
	}
}

func TestWriteHeader_RecordsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError) // dropped

	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("got status %d, want first-written 404", w.StatusCode())
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("underlying recorder got %d, want 404", rec.Code)
	}
}

func TestWrite_AccumulatesSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	for _, chunk := range []string{"hello", ", ", "world"} {
		if _, err := w.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if w.BytesWritten() != len("hello, world") {
		t.Errorf("got %d bytes, want %d", w.BytesWritten(), len("hello, world"))
	}
	if w.StatusCode() != http.StatusOK {
		t.Errorf("implicit write should record 200, got %d", w.StatusCode())
	}
	if rec.Body.String() != "hello, world" {
		t.Errorf("got body %q", rec.Body.String())
	}
}

func TestWrite_AfterExplicitHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusCreated)
	if _, err := w.Write([]byte("made")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if w.StatusCode() != http.StatusCreated {
		t.Errorf("got status %d, want 201", w.StatusCode())
	}
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	if w.Unwrap() != http.ResponseWriter(rec) {
		t.Error("Unwrap() should return the wrapped writer")
	}
}
