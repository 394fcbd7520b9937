package service_test

import (
	"strings"
	"testing"

	"strategy-vault/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService_RoundTrip(t *testing.T) {
	svc := service.NewArgon2HashService()

	hash, err := svc.Hash("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := svc.Verify("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2HashService_WrongPassword(t *testing.T) {
	svc := service.NewArgon2HashService()

	hash, err := svc.Hash("hunter22")
	require.NoError(t, err)

	ok, err := svc.Verify("hunter23", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HashService_UniqueSalts(t *testing.T) {
	svc := service.NewArgon2HashService()

	first, err := svc.Hash("hunter22")
	require.NoError(t, err)
	second, err := svc.Hash("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2HashService_MalformedHash(t *testing.T) {
	svc := service.NewArgon2HashService()

	_, err := svc.Verify("hunter22", "not-a-hash")
	assert.Error(t, err)

	_, err = svc.Verify("hunter22", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	assert.Error(t, err)
}
