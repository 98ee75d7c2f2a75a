/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import "testing"

func TestFieldValueEqual(t *testing.T) {
	if !NewInt(5).Equal(NewInt(5)) {
		t.Fatal("expected 5 == 5")
	}
	if NewInt(5).Equal(NewInt(6)) {
		t.Fatal("expected 5 != 6")
	}
	if NewInt(5).Equal(NewLong(5)) {
		t.Fatal("cross-type values must never be equal")
	}
	if !NewNone(FieldInt).Equal(NewNone(FieldInt)) {
		t.Fatal("None == None of the same type must be true")
	}
	if NewNone(FieldInt).Equal(NewNone(FieldLong)) {
		t.Fatal("None of differing types must not be equal")
	}
}

func TestFieldValueCompare(t *testing.T) {
	cmp, ok := NewInt(1).Compare(NewInt(2))
	if !ok || cmp != -1 {
		t.Fatalf("expected 1 < 2, got cmp=%d ok=%v", cmp, ok)
	}
	cmp, ok = NewString("b").Compare(NewString("a"))
	if !ok || cmp != 1 {
		t.Fatalf("expected \"b\" > \"a\", got cmp=%d ok=%v", cmp, ok)
	}
	if _, ok := NewBoolean(true).Compare(NewBoolean(true)); ok {
		t.Fatal("Boolean must not be orderable")
	}
	if _, ok := NewInt(1).Compare(NewLong(1)); ok {
		t.Fatal("cross-type values must not compare")
	}
	if _, ok := NewNone(FieldInt).Compare(NewInt(1)); ok {
		t.Fatal("None must not compare")
	}
}

func TestHeaderDeleteColumn(t *testing.T) {
	h := NewHeader([]string{"a", "b", "c"}, []FieldType{FieldInt, FieldString, FieldLong})
	h2 := h.DeleteColumn(1)
	if h2.Len() != 2 || h2.FieldNames[0] != "a" || h2.FieldNames[1] != "c" {
		t.Fatalf("unexpected header after delete: %+v", h2)
	}
	if h.Len() != 3 {
		t.Fatal("original header must not be mutated")
	}
}

func TestGenerateDefaultFieldNames(t *testing.T) {
	names := GenerateDefaultFieldNames(3)
	want := []string{"col_0", "col_1", "col_2"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}
