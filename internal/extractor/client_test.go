package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"AttendSheet/pkg/errors"
)

func pdfBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, "%PDF-1.7\n")
	return b
}

func newTestClient(url string) *Client {
	return NewWithOptions(url, 5*1024*1024, http.DefaultClient)
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	c := NewWithOptions("http://unused", 10, http.DefaultClient)

	err := c.Validate("report.pdf", 11, pdfBytes(11))
	if !errors.Is(err, errors.FileTooLarge) {
		t.Fatalf("err = %v, want FileTooLarge", err)
	}
}

func TestValidateRejectsNonPDF(t *testing.T) {
	c := newTestClient("http://unused")

	if err := c.Validate("report.txt", 10, pdfBytes(10)); !errors.Is(err, errors.FileTypeInvalid) {
		t.Fatalf("wrong extension: err = %v, want FileTypeInvalid", err)
	}

	if err := c.Validate("report.pdf", 10, []byte("not a pdf")); !errors.Is(err, errors.FileTypeInvalid) {
		t.Fatalf("wrong magic: err = %v, want FileTypeInvalid", err)
	}
}

func TestExtractSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file field: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"employee": {"id": "E-1001", "name": "Juan Dela Cruz"},
			"logs": [{"Date": "2024-01-05", "Day": "Fri", "Shift": "1", "TimeIn": "08:00", "TimeOut": "17:00"}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	result, err := c.Extract(context.Background(), "report.pdf", pdfBytes(64))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if result.Employee.Name != "Juan Dela Cruz" {
		t.Fatalf("employee name = %q", result.Employee.Name)
	}
	if len(result.Logs) != 1 || result.Logs[0].TimeIn != "08:00" {
		t.Fatalf("logs = %+v", result.Logs)
	}
}

func TestExtractSurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "no attendance table found on page 1"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Extract(context.Background(), "report.pdf", pdfBytes(64))

	def, ok := err.(errors.Definition)
	if !ok {
		t.Fatalf("err = %T, want Definition", err)
	}
	if def.Code != errors.ExtractionFailed.Code {
		t.Fatalf("code = %q, want %q", def.Code, errors.ExtractionFailed.Code)
	}
	if def.Message != "no attendance table found on page 1" {
		t.Fatalf("service message should surface verbatim, got %q", def.Message)
	}
}

func TestExtractMalformedResponseIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Extract(context.Background(), "report.pdf", pdfBytes(64)); !errors.Is(err, errors.ExtractionUnavailable) {
		t.Fatalf("err = %v, want ExtractionUnavailable", err)
	}
}

func TestExtractTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 关掉立刻触发连接失败

	c := newTestClient(srv.URL)
	if _, err := c.Extract(context.Background(), "report.pdf", pdfBytes(64)); !errors.Is(err, errors.ExtractionUnavailable) {
		t.Fatalf("err = %v, want ExtractionUnavailable", err)
	}
}
