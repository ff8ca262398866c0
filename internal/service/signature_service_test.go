package service

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"donation-ledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519SignatureService_Verify(t *testing.T) {
	svc := NewEd25519SignatureService()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := domain.PubkeyFromBytes(pub)
	require.NoError(t, err)

	msg := []byte(svc.BuildCanonicalString("POST", "/api/v1/instructions/initialize", 1700000000, "n-1", `{"bank":"x"}`))
	sig := ed25519.Sign(priv, msg)

	assert.True(t, svc.Verify(signer, msg, sig))

	t.Run("tampered message", func(t *testing.T) {
		tampered := append([]byte{}, msg...)
		tampered[0] = 'G'
		assert.False(t, svc.Verify(signer, tampered, sig))
	})

	t.Run("different signer", func(t *testing.T) {
		other, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		otherKey, _ := domain.PubkeyFromBytes(other)
		assert.False(t, svc.Verify(otherKey, msg, sig))
	})

	t.Run("truncated signature", func(t *testing.T) {
		assert.False(t, svc.Verify(signer, msg, sig[:63]))
		assert.False(t, svc.Verify(signer, msg, nil))
	})
}

func TestEd25519SignatureService_BuildCanonicalString(t *testing.T) {
	svc := NewEd25519SignatureService()
	got := svc.BuildCanonicalString("POST", "/api/v1/instructions/make-donations", 1700000000, "abc", `{"amount":1}`)
	assert.Equal(t, `POST|/api/v1/instructions/make-donations|1700000000|abc|{"amount":1}`, got)
}
