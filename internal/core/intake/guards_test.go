package intake

import "testing"

func TestParseContribution(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantRef  string
		wantText string
	}{
		{
			name:     "basic contribution",
			body:     "42: improve the bound using X",
			wantOK:   true,
			wantRef:  "42",
			wantText: "improve the bound using X",
		},
		{
			name:     "internal colons preserved",
			body:     "riemann: try L-functions: the twisted case",
			wantOK:   true,
			wantRef:  "riemann",
			wantText: "try L-functions: the twisted case",
		},
		{
			name:     "whitespace trimmed on both halves",
			body:     "  7  :   shrink the certificate   ",
			wantOK:   true,
			wantRef:  "7",
			wantText: "shrink the certificate",
		},
		{
			name:     "empty free text still parses",
			body:     "3:",
			wantOK:   true,
			wantRef:  "3",
			wantText: "",
		},
		{
			name:   "no colon",
			body:   "not formatted at all",
			wantOK: false,
		},
		{
			name:   "empty body",
			body:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseContribution(tt.body)
			if ok != tt.wantOK {
				t.Fatalf("ParseContribution(%q) ok = %v, want %v", tt.body, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.ProblemRef != tt.wantRef {
				t.Errorf("ProblemRef = %q, want %q", got.ProblemRef, tt.wantRef)
			}
			if got.FreeText != tt.wantText {
				t.Errorf("FreeText = %q, want %q", got.FreeText, tt.wantText)
			}
		})
	}
}

func TestCanClarify(t *testing.T) {
	if CanClarify(Contribution{ProblemRef: "1", FreeText: ""}) {
		t.Error("expected empty free text to skip clarification")
	}
	if !CanClarify(Contribution{ProblemRef: "1", FreeText: "an idea"}) {
		t.Error("expected non-empty free text to be clarifiable")
	}
}
