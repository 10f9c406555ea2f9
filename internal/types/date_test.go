package types

import (
	"testing"
	"time"
)

var (
	est = time.FixedZone("EST", -5*60*60)
	jst = time.FixedZone("JST", 9*60*60)
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{
			name: "date input",
			raw:  "2025-12-04",
			loc:  time.UTC,
			want: time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "utc midnight timestamp seen from a western zone",
			raw:  "2025-12-04T00:00:00.000Z",
			loc:  est,
			want: time.Date(2025, time.December, 3, 0, 0, 0, 0, est),
		},
		{
			name: "utc midnight timestamp seen from an eastern zone",
			raw:  "2025-12-04T00:00:00Z",
			loc:  jst,
			want: time.Date(2025, time.December, 4, 0, 0, 0, 0, jst),
		},
		{
			name: "surrounding spaces",
			raw:  " 2024-02-29 ",
			loc:  time.UTC,
			want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "empty",
			raw:  "",
			loc:  time.UTC,
			want: time.Time{},
		},
		{
			name:    "garbage",
			raw:     "04/12/2025",
			loc:     time.UTC,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw, tt.loc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
	d := time.Date(2025, time.January, 9, 17, 45, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2025-01-09" {
		t.Errorf("FormatDate = %q, want 2025-01-09", got)
	}
}
