package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	keyLen  = 32 // AES-256
	saltLen = 16
)

// Params are the Argon2id cost parameters used to stretch a passphrase.
type Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
}

// DefaultParams is used by the CLI for new key files.
var DefaultParams = Params{
	Memory:  64 * 1024, // 64MB
	Time:    1,
	Threads: 4,
}

type kdf struct {
	params Params
	salt   []byte
}

// MaxMemory bounds Params.Memory (KiB) so a key file cannot demand an
// arbitrary allocation when it is opened.
const MaxMemory = 4 * 1024 * 1024 // 4GB

func (p Params) validate() error {
	if p.Time < 1 {
		return fmt.Errorf("argon2 time must be at least 1, got %d", p.Time)
	}
	if p.Threads < 1 {
		return fmt.Errorf("argon2 threads must be at least 1, got %d", p.Threads)
	}
	if p.Memory < 1 || p.Memory > MaxMemory {
		return fmt.Errorf("argon2 memory must be within 1..%d KiB, got %d", MaxMemory, p.Memory)
	}
	return nil
}

func newKDF(params Params) (*kdf, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return &kdf{params: params, salt: salt}, nil
}

func (k *kdf) key(passphrase string) []byte {
	return argon2.IDKey([]byte(passphrase), k.salt, k.params.Time, k.params.Memory, k.params.Threads, keyLen)
}

// String encodes the parameters as $argon2id$v=19$m=65536,t=1,p=4$<salt>.
func (k *kdf) String() string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		argon2.Version,
		k.params.Memory, k.params.Time, k.params.Threads,
		base64.RawStdEncoding.EncodeToString(k.salt),
	)
}

func parseKDF(encoded string) (*kdf, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return nil, fmt.Errorf("invalid kdf format: expected 5 parts, got %d", len(parts))
	}

	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("unsupported kdf: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("parsing version: %w", err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	k := &kdf{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &k.params.Memory, &k.params.Time, &k.params.Threads); err != nil {
		return nil, fmt.Errorf("parsing params: %w", err)
	}
	if err := k.params.validate(); err != nil {
		return nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("decoding salt: %w", err)
	}
	k.salt = salt

	return k, nil
}
