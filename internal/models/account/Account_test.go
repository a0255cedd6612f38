package account

import "testing"

func TestSetPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	a := Account{Username: "alice"}
	if err := a.SetPassword("hunter2"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	first := a.EncryptedPassword

	if err := a.SetPassword("hunter2"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if a.EncryptedPassword == first {
		t.Fatal("expected different digests for the same input on repeated hashing")
	}
	if a.EncryptedPassword == "hunter2" {
		t.Fatal("password stored in plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	a := Account{Username: "alice"}
	if err := a.SetPassword("hunter2"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}

	if err := a.CheckPassword("hunter2"); err != nil {
		t.Fatalf("CheckPassword rejected the correct password: %v", err)
	}
	if err := a.CheckPassword("wrong"); err == nil {
		t.Fatal("CheckPassword accepted a wrong password")
	}
}
