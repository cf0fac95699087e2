package league

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRow_MarshalJSON(t *testing.T) {
	row := Row{Caps: true, Pos: 1, Team: "Newcastle United", Stats: []int{42, 28, 10, 4, 85, 35, 94}}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `[true,1,"Newcastle United",42,28,10,4,85,35,94]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestRow_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Row
		wantErr bool
	}{
		{
			name:  "full tuple",
			input: `[false,22,"Queen's Park Rangers",38,6,13,19,37,62,31]`,
			want:  Row{Pos: 22, Team: "Queen's Park Rangers", Stats: []int{38, 6, 13, 19, 37, 62, 31}},
		},
		{
			name:  "no stats",
			input: `[true,3,"Burton"]`,
			want:  Row{Caps: true, Pos: 3, Team: "Burton", Stats: []int{}},
		},
		{
			name:    "too short",
			input:   `[true,3]`,
			wantErr: true,
		},
		{
			name:    "wrong type",
			input:   `["yes",3,"Burton"]`,
			wantErr: true,
		},
		{
			name:    "not an array",
			input:   `{"pos":1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Row
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Error("Unmarshal() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDivision_TitleAndSize(t *testing.T) {
	d := Division{
		Info:  []string{"Division Three (South)", "Round robin"},
		Table: []Row{{Pos: 1, Team: "A"}, {Pos: 2, Team: "B"}},
	}

	if got := d.Title(); got != "Division Three (South)" {
		t.Errorf("Title() = %q, want %q", got, "Division Three (South)")
	}
	if got := d.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
	if got := (Division{}).Title(); got != "" {
		t.Errorf("Title() of empty division = %q, want empty", got)
	}
}

func TestBaseHeader_ReturnsCopy(t *testing.T) {
	h := BaseHeader()
	h[0] = "changed"

	if BaseHeader()[0] != ColumnCaps {
		t.Error("BaseHeader() should return a fresh slice each call")
	}
}
