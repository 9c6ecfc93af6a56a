package crypto

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/cookievault/go-cookie-vault/models"
)

type testPayload struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	svc := NewEnvelopeService()

	in := []testPayload{
		{Name: "sessionid", Value: "abc123"},
		{Name: "pref", Value: "dark"},
	}

	env, err := svc.Encrypt(in, "hunter2")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var out []testPayload
	if err = svc.Decrypt(env, "hunter2", &out); err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("round trip length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("round trip item %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestEncrypt_FreshSaltAndNonceEveryCall(t *testing.T) {
	svc := NewEnvelopeService()

	e1, err := svc.Encrypt("same payload", "same passphrase")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	e2, err := svc.Encrypt("same payload", "same passphrase")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if e1.Salt == e2.Salt {
		t.Fatalf("expected salts to differ across calls")
	}
	if e1.IV == e2.IV {
		t.Fatalf("expected nonces to differ across calls")
	}
	if e1.Ciphertext == e2.Ciphertext {
		t.Fatalf("expected ciphertexts to differ across calls")
	}
}

func TestEncrypt_WireParameterLengths(t *testing.T) {
	svc := NewEnvelopeService()

	env, err := svc.Encrypt(map[string]string{"k": "v"}, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		t.Fatalf("salt is not valid base64: %v", err)
	}
	if len(salt) != 16 {
		t.Fatalf("salt length = %d, want 16", len(salt))
	}

	iv, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		t.Fatalf("iv is not valid base64: %v", err)
	}
	if len(iv) != 12 {
		t.Fatalf("iv length = %d, want 12", len(iv))
	}
}

func TestDecrypt_WrongPassphraseFailsClosed(t *testing.T) {
	svc := NewEnvelopeService()

	env, err := svc.Encrypt(testPayload{Name: "sid", Value: "abc"}, "right")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var out testPayload
	err = svc.Decrypt(env, "wrong", &out)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt with wrong passphrase = %v, want ErrDecryptionFailed", err)
	}
	if out != (testPayload{}) {
		t.Fatalf("partial plaintext leaked: %+v", out)
	}
}

func TestDecrypt_TamperedCiphertextDetected(t *testing.T) {
	svc := NewEnvelopeService()

	env, err := svc.Encrypt(testPayload{Name: "sid", Value: "abc"}, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// Flip one bit in the ciphertext.
	ct, _ := base64.StdEncoding.DecodeString(env.Ciphertext)
	ct[len(ct)/2] ^= 0x01
	tampered := env
	tampered.Ciphertext = base64.StdEncoding.EncodeToString(ct)

	var out testPayload
	if err = svc.Decrypt(tampered, "pw", &out); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt of tampered ciphertext = %v, want ErrDecryptionFailed", err)
	}

	// Flip one bit in the IV.
	iv, _ := base64.StdEncoding.DecodeString(env.IV)
	iv[0] ^= 0x80
	tampered = env
	tampered.IV = base64.StdEncoding.EncodeToString(iv)

	if err = svc.Decrypt(tampered, "pw", &out); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt with tampered IV = %v, want ErrDecryptionFailed", err)
	}

	// Flip one bit in the salt: the derived key changes, so the tag fails.
	salt, _ := base64.StdEncoding.DecodeString(env.Salt)
	salt[3] ^= 0x10
	tampered = env
	tampered.Salt = base64.StdEncoding.EncodeToString(salt)

	if err = svc.Decrypt(tampered, "pw", &out); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt with tampered salt = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecrypt_MalformedPlaintextIsDistinct(t *testing.T) {
	svc := NewEnvelopeService()

	// A valid envelope whose plaintext is a JSON string, decrypted into an
	// incompatible target: the tag verifies, the unmarshal does not.
	env, err := svc.Encrypt("just a string", "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var out []testPayload
	err = svc.Decrypt(env, "pw", &out)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("Decrypt into wrong shape = %v, want ErrMalformedPayload", err)
	}
	if errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("malformed payload must not be reported as a decryption failure")
	}
}

func TestDecrypt_GarbageBase64(t *testing.T) {
	svc := NewEnvelopeService()

	var out testPayload
	err := svc.Decrypt(models.Envelope{Ciphertext: "!!!", IV: "!!!", Salt: "!!!"}, "pw", &out)
	if err == nil {
		t.Fatalf("expected error for non-base64 envelope fields")
	}
}
