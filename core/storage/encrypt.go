package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"os"
)

// At-rest encryption of the persisted snapshot is optional: it runs only
// when HERBLEDGER_DEK is set (base64, 32 bytes decoded). Without a key the
// snapshot is stored in the clear, matching the demo trust model.

func dek() ([]byte, bool, error) {
	b64 := os.Getenv("HERBLEDGER_DEK")
	if b64 == "" {
		return nil, false, nil
	}
	key, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, true, errors.New("failed to decode HERBLEDGER_DEK: " + err.Error())
	}
	if len(key) != 32 {
		return nil, true, errors.New("HERBLEDGER_DEK must decode to 32 bytes")
	}
	return key, true, nil
}

// seal encrypts plaintext with AES-256-GCM when a DEK is configured.
func seal(plaintext []byte) ([]byte, error) {
	key, set, err := dek()
	if err != nil {
		return nil, err
	}
	if !set {
		return plaintext, nil
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts ciphertext with AES-256-GCM when a DEK is configured.
func open(ciphertext []byte) ([]byte, error) {
	key, set, err := dek()
	if err != nil {
		return nil, err
	}
	if !set {
		return ciphertext, nil
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ct := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ct, nil)
}
