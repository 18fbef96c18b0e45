package access

import "testing"

func TestParseAccessor(t *testing.T) {
	tests := []struct {
		s    string
		want Accessor
	}{
		{"pub", Public},
		{"pri", Private},
		{"pro", Protected},
		{"nonsense", Private},
	}
	for _, tt := range tests {
		if got := ParseAccessor(tt.s); got != tt.want {
			t.Errorf("ParseAccessor(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name        string
		memberAcc   Accessor
		accessorAcc Accessor
		want        bool
	}{
		{"public member is visible to anyone", Public, Private, true},
		{"public member is visible to protected requester", Public, Protected, true},
		{"private member is visible to a private requester", Private, Private, true},
		{"private member is not visible to a protected requester", Private, Protected, false},
		{"private member is not visible to a public requester", Private, Public, false},
		{"protected member is visible to a protected requester", Protected, Protected, true},
		{"protected member is visible to a private requester", Protected, Private, true},
		{"protected member is not visible to a public requester", Protected, Public, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.memberAcc, tt.accessorAcc); got != tt.want {
				t.Errorf("CanAccess(%v, %v) = %v, want %v", tt.memberAcc, tt.accessorAcc, got, tt.want)
			}
		})
	}
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		s    string
		want Modifier
	}{
		{"static", Static},
		{"const", Constant},
		{"init", Init},
		{"nonsense", None},
	}
	for _, tt := range tests {
		if got := ParseModifier(tt.s); got != tt.want {
			t.Errorf("ParseModifier(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestModifierFlagsCompose(t *testing.T) {
	m := AddFlag(AddFlag(None, Static), Constant)
	if !HasFlag(m, Static) || !HasFlag(m, Constant) {
		t.Fatalf("expected both flags set, got %v", m)
	}
	if HasFlag(m, Array) {
		t.Fatalf("expected Array to be unset, got %v", m)
	}
	m = RemoveFlag(m, Static)
	if HasFlag(m, Static) {
		t.Fatal("expected Static to be cleared after RemoveFlag")
	}
	if !HasFlag(m, Constant) {
		t.Fatal("expected Constant to remain set after removing Static")
	}
}

func TestIsModifierKeyword(t *testing.T) {
	for _, s := range []string{"static", "const", "init"} {
		if !IsModifierKeyword(s) {
			t.Errorf("expected %q to be a modifier keyword", s)
		}
	}
	if IsModifierKeyword("pub") {
		t.Error("expected an accessor keyword to not also be a modifier keyword")
	}
}
