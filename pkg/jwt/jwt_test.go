package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "biz-1", "admin", "inventory-ledger", 5)
	require.NoError(t, err)

	c, err := jwt.Parse(secret, "inventory-ledger", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "biz-1", c.BusinessID)
	assert.Equal(t, "admin", c.Role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "biz-1", "admin", "", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", "", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "biz-1", "admin", "", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "", tok)
	assert.Error(t, err)
}

func TestParse_EmisorDistinto(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "biz-1", "admin", "otro", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "inventory-ledger", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "biz-1", "admin", "", 5)
	assert.Error(t, err)
}
