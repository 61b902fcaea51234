package table

import (
	"encoding/json"
	"testing"
)

func TestNullFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    NullFloat
		wantErr bool
	}{
		{in: `null`, want: Null()},
		{in: `12.5`, want: Float(12.5)},
		{in: `"262134"`, want: Float(262134)},
		{in: `""`, want: Null()},
		{in: `"abc"`, wantErr: true},
		{in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got NullFloat
			err := json.Unmarshal([]byte(tt.in), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNullFloat_MarshalJSON(t *testing.T) {
	b, _ := json.Marshal([]NullFloat{Float(3), Null()})
	if string(b) != `[3,null]` {
		t.Errorf("json = %s, want [3,null]", b)
	}
}

func TestParseNullFloat(t *testing.T) {
	v, err := ParseNullFloat(" 80000000000 ")
	if err != nil || !v.Valid || v.Float64 != 8e10 {
		t.Errorf("ParseNullFloat = %v, %v", v, err)
	}
	v, err = ParseNullFloat("NaN")
	if err != nil || v.Valid {
		t.Errorf("NaN should parse to null, got %v, %v", v, err)
	}
	if _, err := ParseNullFloat("x"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}
