// Package keystore keeps Ed25519 signer keys on disk, sealed with AES-256-GCM
// under an Argon2id-stretched passphrase.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcutil/base58"
)

const fileVersion = 1

// ErrWrongPassphrase is returned when the key file cannot be opened with the
// given passphrase.
var ErrWrongPassphrase = errors.New("keystore: wrong passphrase or corrupted file")

// File is the on-disk form of one sealed signer key.
type File struct {
	Version    int    `json:"version"`
	PublicKey  string `json:"public_key"`
	KDF        string `json:"kdf"`
	Ciphertext string `json:"ciphertext"` // hex nonce || sealed seed
}

// Seal encrypts the seed of priv under passphrase.
func Seal(priv ed25519.PrivateKey, passphrase string, params Params) (*File, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(priv))
	}

	k, err := newKDF(params)
	if err != nil {
		return nil, err
	}

	aesGCM, err := newGCM(k.key(passphrase))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	pub := priv.Public().(ed25519.PublicKey)
	// the public key is bound as associated data so it cannot be swapped
	sealed := aesGCM.Seal(nonce, nonce, priv.Seed(), pub)

	return &File{
		Version:    fileVersion,
		PublicKey:  base58.Encode(pub),
		KDF:        k.String(),
		Ciphertext: hex.EncodeToString(sealed),
	}, nil
}

// Open decrypts the key file and returns the signer's private key.
func (f *File) Open(passphrase string) (ed25519.PrivateKey, error) {
	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", f.Version)
	}

	pub := base58.Decode(f.PublicKey)
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key in keystore")
	}

	k, err := parseKDF(f.KDF)
	if err != nil {
		return nil, err
	}

	ciphertext, err := hex.DecodeString(f.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}

	aesGCM, err := newGCM(k.key(passphrase))
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	seed, err := aesGCM.Open(nil, nonce, ciphertext, pub)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	if len(seed) != ed25519.SeedSize {
		return nil, ErrWrongPassphrase
	}

	priv := ed25519.NewKeyFromSeed(seed)
	if !priv.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(pub)) {
		return nil, ErrWrongPassphrase
	}
	return priv, nil
}

// Save writes the key file with owner-only permissions.
func Save(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding keystore: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing keystore: %w", err)
	}
	return nil
}

// Load reads a key file written by Save.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keystore: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding keystore: %w", err)
	}
	return &f, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aesGCM, nil
}
