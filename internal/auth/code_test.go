package auth

import "testing"

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for range 20 {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != codeDigits {
			t.Fatalf("length: got %d, want %d", len(code), codeDigits)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit %q in code %q", c, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes should vary across generations")
	}
}

func TestMatchCode(t *testing.T) {
	hash := hashCode("phone-a", "123456")

	if !matchCode("phone-a", "123456", hash) {
		t.Error("matching code should verify")
	}
	if matchCode("phone-a", "654321", hash) {
		t.Error("wrong code should not verify")
	}
	if matchCode("phone-b", "123456", hash) {
		t.Error("code issued for another phone should not verify")
	}
}
