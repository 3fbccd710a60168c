package extract

import "testing"

func TestNormalizeDatetime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attr    string
		visible string
		want    string
	}{
		{
			name: "machine-readable attribute with offset",
			attr: "2022-02-01T14:05:30+01:00",
			want: "2022-02-01 14:05:30",
		},
		{
			name: "machine-readable attribute with Z suffix",
			attr: "2021-12-24T08:00:00Z",
			want: "2021-12-24 08:00:00",
		},
		{
			name:    "attribute wins over visible text",
			attr:    "2022-02-01T14:05:30+01:00",
			visible: "1 únor 2022, 14:05",
			want:    "2022-02-01 14:05:30",
		},
		{
			name:    "fallback to visible date and time pair",
			attr:    "not-a-timestamp",
			visible: "čtvrtek 1 únor 2022, 14:05",
			want:    "1 únor 2022 14:05",
		},
		{
			name:    "visible pair without comma",
			visible: "1 únor 2022 14:05",
			want:    "1 únor 2022 14:05",
		},
		{
			name:    "unparseable keeps raw text",
			attr:    "",
			visible: "yesterday-ish",
			want:    "yesterday-ish",
		},
		{
			name:    "raw text is whitespace-collapsed",
			visible: "  some \n  odd   label ",
			want:    "some odd label",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeDatetime(tt.attr, tt.visible); got != tt.want {
				t.Errorf("normalizeDatetime(%q, %q) = %q, want %q", tt.attr, tt.visible, got, tt.want)
			}
		})
	}
}
