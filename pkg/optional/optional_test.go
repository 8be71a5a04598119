package optional

import (
	"encoding/json"
	"testing"
)

type payload struct {
	Name  Value[string]   `json:"name"`
	Score Value[*float64] `json:"score"`
}

func TestValueDecoding(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{"score":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name.Set {
		t.Fatal("absent field reported as set")
	}
	if !p.Score.Set || p.Score.Value != nil {
		t.Fatalf("explicit null: got %+v", p.Score)
	}

	if err := json.Unmarshal([]byte(`{"name":"x","score":4.5}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Name.Set || p.Name.Value != "x" {
		t.Fatalf("name: got %+v", p.Name)
	}
	if p.Score.Value == nil || *p.Score.Value != 4.5 {
		t.Fatalf("score: got %+v", p.Score)
	}
}

func TestApply(t *testing.T) {
	dst := "old"
	Value[string]{}.Apply(&dst)
	if dst != "old" {
		t.Fatalf("unset value overwrote dst: %q", dst)
	}
	Of("new").Apply(&dst)
	if dst != "new" {
		t.Fatalf("set value not applied: %q", dst)
	}
}
