package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tturner/formfill/internal/submission"
)

func newService(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func submitOptions(apiURL string, fields ...FieldValue) (SubmitOptions, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	base := []FieldValue{
		{Field: submission.FieldFormURL, Value: "https://example.com/form", Flag: "--url"},
		{Field: submission.FieldResponses, Value: "3", Flag: "--responses"},
	}
	return SubmitOptions{
		CommonOptions: CommonOptions{APIURL: apiURL, Variant: "extended"},
		Fields:        append(base, fields...),
		Stdout:        &stdout,
		Stderr:        &stderr,
	}, &stdout, &stderr
}

func TestSubmitSuccess(t *testing.T) {
	srv, calls := newService(t, http.StatusOK, `{"message":"Generated 3 fake responses!"}`)
	opts, stdout, stderr := submitOptions(srv.URL)

	if err := Submit(context.Background(), opts); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Errorf("service called %d times, want 1", atomic.LoadInt32(calls))
	}
	if got := strings.TrimSpace(stdout.String()); got != "Generated 3 fake responses!" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(stderr.String(), "3/3 (100.0%)") {
		t.Errorf("progress bar should finish at the total, stderr = %q", stderr.String())
	}
}

func TestSubmitReportsErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantOut string
	}{
		{"server error message", http.StatusInternalServerError, `{"message":"Error generating responses.","details":"quota"}`, "Error generating responses."},
		{"malformed body", http.StatusOK, `not json`, submission.FailureMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newService(t, tt.status, tt.body)
			opts, stdout, _ := submitOptions(srv.URL)
			opts.Quiet = true

			err := Submit(context.Background(), opts)
			if !errors.Is(err, ErrSubmissionFailed) {
				t.Fatalf("Submit() error = %v, want ErrSubmissionFailed", err)
			}
			if got := strings.TrimSpace(stdout.String()); got != tt.wantOut {
				t.Errorf("stdout = %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestSubmitNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	opts, stdout, stderr := submitOptions(url)
	err := Submit(context.Background(), opts)
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("Submit() error = %v, want ErrSubmissionFailed", err)
	}
	if !strings.Contains(stdout.String(), submission.FailureMessage) {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "ERROR") {
		t.Errorf("failure should be logged to stderr, got %q", stderr.String())
	}
}

func TestSubmitPrintPayload(t *testing.T) {
	srv, calls := newService(t, http.StatusOK, `{"message":"unused"}`)
	opts, stdout, _ := submitOptions(srv.URL,
		FieldValue{Field: submission.FieldTone, Value: "mixed", Flag: "--tone"},
	)
	opts.PrintPayload = true

	if err := Submit(context.Background(), opts); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("--print-payload should not contact the service")
	}
	for _, want := range []string{`"formUrl": "https://example.com/form"`, `"numResponses": 3`, `"responseTone": "mixed"`} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("payload missing %s:\n%s", want, stdout.String())
		}
	}
}

func TestSubmitRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitOptions)
		wantErr string
	}{
		{"missing url", func(o *SubmitOptions) { o.Fields = o.Fields[1:] }, "form URL is required"},
		{"responses out of range", func(o *SubmitOptions) {
			o.Fields = append(o.Fields, FieldValue{Field: submission.FieldResponses, Value: "99", Flag: "--responses"})
		}, "--responses"},
		{"interval above ceiling", func(o *SubmitOptions) {
			o.Fields = append(o.Fields,
				FieldValue{Field: submission.FieldIntervalMinutes, Value: "5", Flag: "--interval-minutes"},
				FieldValue{Field: submission.FieldIntervalSeconds, Value: "30", Flag: "--interval-seconds"},
			)
		}, "interval must be between"},
		{"unknown variant", func(o *SubmitOptions) { o.Variant = "full" }, "--variant"},
		{"missing config", func(o *SubmitOptions) {
			o.ConfigPath = filepath.Join(o.ConfigPath, "does-not-exist", "formfill.yaml")
		}, "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newService(t, http.StatusOK, `{"message":"unused"}`)
			opts, _, _ := submitOptions(srv.URL)
			tt.mutate(&opts)

			err := Submit(context.Background(), opts)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %q", err, tt.wantErr)
			}
			if atomic.LoadInt32(calls) != 0 {
				t.Error("invalid input should not contact the service")
			}
		})
	}
}
