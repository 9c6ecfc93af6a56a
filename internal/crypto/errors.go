package crypto

import "errors"

var (
	// ErrDecryptionFailed means the GCM authentication tag did not verify:
	// wrong passphrase, tampered ciphertext, or a salt/IV that does not
	// belong to this ciphertext. The envelope fails closed.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMalformedPayload means the tag verified but the plaintext is not
	// valid JSON for the requested target. Distinct from
	// ErrDecryptionFailed so operators can tell "wrong key" apart from
	// "corrupt or version-skewed data".
	ErrMalformedPayload = errors.New("malformed payload")
)
