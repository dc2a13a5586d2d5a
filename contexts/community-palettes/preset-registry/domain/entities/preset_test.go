package entities

import "testing"

func TestSignatureIgnoresDyeOrder(t *testing.T) {
	base := Signature([]int{3, 17, 204})
	permutations := [][]int{
		{3, 204, 17},
		{17, 3, 204},
		{204, 17, 3},
	}
	for _, dyes := range permutations {
		if got := Signature(dyes); got != base {
			t.Fatalf("expected signature %q for %v, got %q", base, dyes, got)
		}
	}
	if base != "3-17-204" {
		t.Fatalf("expected canonical signature 3-17-204, got %q", base)
	}
}

func TestSignatureDoesNotMutateInput(t *testing.T) {
	dyes := []int{9, 1, 5}
	Signature(dyes)
	if dyes[0] != 9 || dyes[1] != 1 || dyes[2] != 5 {
		t.Fatalf("input slice was reordered: %v", dyes)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    PresetStatus
		to      PresetStatus
		allowed bool
	}{
		{PresetStatusPending, PresetStatusApproved, true},
		{PresetStatusPending, PresetStatusRejected, true},
		{PresetStatusPending, PresetStatusFlagged, true},
		{PresetStatusPending, PresetStatusHidden, false},
		{PresetStatusFlagged, PresetStatusApproved, true},
		{PresetStatusFlagged, PresetStatusRejected, true},
		{PresetStatusFlagged, PresetStatusPending, false},
		{PresetStatusApproved, PresetStatusFlagged, true},
		{PresetStatusApproved, PresetStatusHidden, true},
		{PresetStatusApproved, PresetStatusRejected, false},
		{PresetStatusRejected, PresetStatusApproved, false},
		{PresetStatusRejected, PresetStatusPending, false},
		{PresetStatusHidden, PresetStatusApproved, true},
		{PresetStatusHidden, PresetStatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory("warm") || !ValidCategory("SEASONAL") {
		t.Fatalf("expected known categories to validate")
	}
	if ValidCategory("metallic") || ValidCategory("") {
		t.Fatalf("expected unknown categories to be rejected")
	}
}
