package crypto

import "github.com/cookievault/go-cookie-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_service_mock.go -package=mock

// EnvelopeService performs all passphrase-based cryptography for the cookie
// vault. It knows nothing about the network, storage, or cookies; its only
// job is turning JSON-serializable payloads into encrypted envelopes and
// back.
//
// Every parameter of the scheme (KDF, hash, iteration count, key length,
// salt length, nonce length, cipher) is part of a versioned wire contract:
// independent runtimes that implement the same contract with the same
// passphrase must be able to decrypt each other's envelopes. See
// [FormatVersion] and the constants next to it.
type EnvelopeService interface {
	// Encrypt serializes payload to JSON and encrypts it under a key
	// derived from passphrase. A fresh random salt and nonce are generated
	// on every call; callers can never supply or reuse them.
	Encrypt(payload any, passphrase string) (models.Envelope, error)

	// Decrypt reverses Encrypt into target (a non-nil pointer, as for
	// json.Unmarshal). It returns an error wrapping [ErrDecryptionFailed]
	// when the authentication tag check fails (wrong passphrase, corrupted
	// ciphertext, or mismatched salt/IV) and an error wrapping
	// [ErrMalformedPayload] when the decrypted plaintext is not valid JSON
	// for target. No partial plaintext is ever returned.
	Decrypt(env models.Envelope, passphrase string, target any) error
}
