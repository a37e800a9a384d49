package submission

import (
	"errors"
	"testing"
	"time"
)

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		seconds int
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"default", 0, 5, false},
		{"max seconds", 0, 59, false},
		{"ceiling", 5, 0, false},
		{"above ceiling", 5, 1, true},
		{"5m59s", 5, 59, true},
		{"minutes too large", 6, 0, true},
		{"seconds too large", 0, 60, true},
		{"negative minutes", -1, 0, true},
		{"negative seconds", 0, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval(tt.minutes, tt.seconds)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateInterval(%d, %d) error = %v, wantErr %v", tt.minutes, tt.seconds, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrIntervalOutOfRange) {
				t.Errorf("error should wrap ErrIntervalOutOfRange, got %v", err)
			}
		})
	}
}

func TestRequestValidate(t *testing.T) {
	valid := Request{FormURL: "https://example.com/form", Responses: 3, IntervalSeconds: 5, Tone: TonePositive}

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"valid", func(*Request) {}, nil},
		{"blank url", func(r *Request) { r.FormURL = "   " }, ErrMissingURL},
		{"zero responses", func(r *Request) { r.Responses = 0 }, ErrResponsesOutOfRange},
		{"51 responses", func(r *Request) { r.Responses = 51 }, ErrResponsesOutOfRange},
		{"50 responses", func(r *Request) { r.Responses = 50 }, nil},
		{"interval over five minutes", func(r *Request) { r.IntervalMinutes = 5; r.IntervalSeconds = 30 }, ErrIntervalOutOfRange},
		{"bad tone", func(r *Request) { r.Tone = "angry" }, ErrInvalidTone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRequestInterval(t *testing.T) {
	r := Request{IntervalMinutes: 2, IntervalSeconds: 15}
	if got := r.Interval(); got != 2*time.Minute+15*time.Second {
		t.Errorf("Interval() = %s, want 2m15s", got)
	}
}

func TestRequestWith(t *testing.T) {
	base := DefaultRequest()

	tests := []struct {
		name    string
		field   Field
		value   string
		check   func(Request) bool
		wantErr error
	}{
		{"url trimmed", FieldFormURL, "  https://example.com/form ", func(r Request) bool { return r.FormURL == "https://example.com/form" }, nil},
		{"responses", FieldResponses, "12", func(r Request) bool { return r.Responses == 12 }, nil},
		{"responses not a number", FieldResponses, "many", nil, ErrResponsesOutOfRange},
		{"responses above max", FieldResponses, "51", nil, ErrResponsesOutOfRange},
		{"minutes", FieldIntervalMinutes, "3", func(r Request) bool { return r.IntervalMinutes == 3 }, nil},
		{"minutes blank reads zero", FieldIntervalMinutes, "", func(r Request) bool { return r.IntervalMinutes == 0 }, nil},
		{"minutes above max", FieldIntervalMinutes, "6", nil, ErrIntervalOutOfRange},
		{"seconds garbage reads zero", FieldIntervalSeconds, "abc", func(r Request) bool { return r.IntervalSeconds == 0 }, nil},
		{"seconds above max", FieldIntervalSeconds, "60", nil, ErrIntervalOutOfRange},
		{"context kept verbatim", FieldContext, " Movie survey ", func(r Request) bool { return r.Context == " Movie survey " }, nil},
		{"tone any case", FieldTone, "Mixed", func(r Request) bool { return r.Tone == ToneMixed }, nil},
		{"tone unknown", FieldTone, "sarcastic", nil, ErrInvalidTone},
		{"unknown field", Field("color"), "red", nil, ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.With(tt.field, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("With(%s, %q) error = %v, want %v", tt.field, tt.value, err, tt.wantErr)
				}
				if got != base {
					t.Errorf("failed edit should leave the request unchanged, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(got) {
				t.Errorf("With(%s, %q) = %+v", tt.field, tt.value, got)
			}
		})
	}
}

func TestDefaultRequest(t *testing.T) {
	r := DefaultRequest()
	if r.Responses != 1 || r.IntervalMinutes != 0 || r.IntervalSeconds != 5 || r.Tone != TonePositive {
		t.Errorf("DefaultRequest() = %+v", r)
	}
	if err := r.Validate(); !errors.Is(err, ErrMissingURL) {
		t.Errorf("default request should only lack a URL, got %v", err)
	}
}
