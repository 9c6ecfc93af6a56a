package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/cookievault/go-cookie-vault/models"
)

// Wire-contract parameters. These values are shared verbatim by every
// runtime that reads or writes vault envelopes (the browser extension uses
// Web Crypto with the same tuple); changing any of them is a format bump.
const (
	// FormatVersion identifies the (KDF, hash, iterations, key length,
	// salt length, nonce length, cipher) tuple below. Not yet embedded in
	// the envelope itself: existing readers consume bare
	// {encrypted_data, iv, salt} rows. Bump together with a storage-side
	// format column.
	FormatVersion = 1

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA256 iteration count.
	PBKDF2Iterations = 100_000

	keyLen   = 32 // AES-256
	saltLen  = 16 // 128-bit KDF salt
	nonceLen = 12 // 96-bit GCM nonce
)

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct {
	iterations int
}

// NewEnvelopeService constructs an [EnvelopeService] with the fixed wire
// parameters: PBKDF2-HMAC-SHA256 over 100 000 iterations deriving a 256-bit
// key, AES-256-GCM with a random 96-bit nonce, 128-bit random salt.
func NewEnvelopeService() EnvelopeService {
	return &envelopeService{iterations: PBKDF2Iterations}
}

// deriveKey stretches passphrase and salt into a 256-bit AES key.
func (e *envelopeService) deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, e.iterations, keyLen, sha256.New)
}

// Encrypt implements [EnvelopeService]. The returned envelope carries the
// ciphertext (with the GCM tag appended, as gcm.Seal produces it), the
// nonce, and the KDF salt, each base64-encoded separately. Salt and nonce
// come from the OS CSPRNG on every call.
func (e *envelopeService) Encrypt(payload any, passphrase string) (models.Envelope, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}

	salt := make([]byte, saltLen)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return models.Envelope{}, fmt.Errorf("generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return models.Envelope{}, fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := e.newGCM(passphrase, salt)
	if err != nil {
		return models.Envelope{}, err
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return models.Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Decrypt implements [EnvelopeService]. It verifies the GCM tag before any
// plaintext leaves this function; a tag mismatch yields
// [ErrDecryptionFailed] and no output.
func (e *envelopeService) Decrypt(env models.Envelope, passphrase string, target any) error {
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return fmt.Errorf("decode ciphertext: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return fmt.Errorf("decode iv: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return fmt.Errorf("decode salt: %w", err)
	}

	gcm, err := e.newGCM(passphrase, salt)
	if err != nil {
		return err
	}

	if len(nonce) != gcm.NonceSize() {
		return fmt.Errorf("%w: bad nonce length %d", ErrDecryptionFailed, len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Almost always a wrong passphrase; the same error also covers
		// bit flips anywhere in ciphertext, nonce, or salt.
		return fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return nil
}

func (e *envelopeService) newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
