package security

import "testing"

func TestHasher_Hash_MD5KnownVector(t *testing.T) {
	h := NewHasher()

	got, err := h.Hash("password", "")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	// md5("password")
	if want := "5f4dcc3b5aa765d61d8327deb882cf99"; got != want {
		t.Fatalf("md5 hash = %s, want %s", got, want)
	}
}

func TestHasher_Hash_SHA256WithSalt(t *testing.T) {
	h := NewHasher()

	got, err := h.Hash("password", "salt")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	// sha256("passwordsalt")
	if want := "7a37b85c8918eac19a9089c0fa5a2ab4dce3f90528dcdeec108b23ddf3607b99"; got != want {
		t.Fatalf("sha256 hash = %s, want %s", got, want)
	}
	if len(got) != 64 {
		t.Fatalf("sha256 hash length = %d, want 64", len(got))
	}
}

func TestHasher_Hash_EmptyPassword(t *testing.T) {
	h := NewHasher()
	if _, err := h.Hash("", ""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher()

	stored, err := h.Hash("s3cret1", "")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !h.Verify("s3cret1", stored, "") {
		t.Error("correct password did not verify")
	}
	if h.Verify("wrong", stored, "") {
		t.Error("wrong password verified")
	}
	if h.Verify("", stored, "") {
		t.Error("empty password verified")
	}
	if h.Verify("s3cret1", "", "") {
		t.Error("empty stored hash verified")
	}
	// salt changes the scheme entirely
	if h.Verify("s3cret1", stored, "salt") {
		t.Error("verified against wrong scheme")
	}
}

func TestHasher_Fingerprint(t *testing.T) {
	h := NewHasher()

	a := h.Fingerprint("token-a")
	b := h.Fingerprint("token-b")
	if a == b {
		t.Error("distinct tokens share a fingerprint")
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(a))
	}
	if a != h.Fingerprint("token-a") {
		t.Error("fingerprint not deterministic")
	}
}
