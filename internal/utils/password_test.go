package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Fatal("wrong password must not verify")
	}
}
