package utils

import "testing"

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pa55word", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pa55word" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "s3cret-pa55word") {
		t.Fatal("verify(hash(p), p) must be true")
	}
}

func TestVerifyRejectsMutations(t *testing.T) {
	const password = "correct horse battery staple"
	hash, err := HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	// Flip one character at a time; every mutation must fail verification.
	for i := 0; i < len(password); i++ {
		mutated := []byte(password)
		mutated[i] ^= 0x01
		if VerifyPassword(hash, string(mutated)) {
			t.Fatalf("mutation at index %d verified against the original hash", i)
		}
	}
	if VerifyPassword(hash, "") {
		t.Fatal("empty password verified")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same-input", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("same-input", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (salt)")
	}
	if !VerifyPassword(h1, "same-input") || !VerifyPassword(h2, "same-input") {
		t.Fatal("both salted hashes must verify")
	}
}
