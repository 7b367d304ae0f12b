package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already canonical",
			raw:  "5492615551234",
			want: "5492615551234",
		},
		{
			name: "country code without mobile marker",
			raw:  "542615551234",
			want: "5492615551234",
		},
		{
			name: "spaced international number",
			raw:  "54 9 261 555 1234",
			want: "5492615551234",
		},
		{
			name: "local ten digit number",
			raw:  "261 555 1234",
			want: "5492615551234",
		},
		{
			name: "local number with leading zero trunk prefix",
			raw:  "02615551234",
			want: "5492615551234",
		},
		{
			name: "dashes and dots inside one number",
			raw:  "261-555.1234",
			want: "5492615551234",
		},
		{
			name: "first of several numbers wins",
			raw:  "2615551234 / 2614440000",
			want: "5492615551234",
		},
		{
			name: "short run before a valid number is skipped",
			raw:  "interno 1234 cel 2615551234",
			want: "5492615551234",
		},
		{
			name: "no digits at all",
			raw:  "abc",
			want: "",
		},
		{
			name: "empty cell",
			raw:  "",
			want: "",
		},
		{
			name: "only short runs",
			raw:  "261 / 4321",
			want: "",
		},
		{
			name: "eight digits is still too short",
			raw:  "26155512",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	raw := "54 261 555 1234 / 261 444 0000"
	first := Normalize(raw)
	for i := 0; i < 5; i++ {
		if got := Normalize(raw); got != first {
			t.Fatalf("Normalize is not deterministic: %q then %q", first, got)
		}
	}
}
