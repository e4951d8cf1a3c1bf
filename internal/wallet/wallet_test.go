package wallet_test

import (
	"encoding/hex"
	"testing"

	"disperse_back/internal/wallet"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyHex(t *testing.T) (string, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return hex.EncodeToString(crypto.FromECDSA(key)), crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func TestParsePrivateKey(t *testing.T) {
	keyHex, addr := newKeyHex(t)

	acc, err := wallet.ParsePrivateKey(keyHex)
	require.NoError(t, err)
	assert.Equal(t, addr, acc.Address.Hex())

	acc, err = wallet.ParsePrivateKey("0x" + keyHex)
	require.NoError(t, err)
	assert.Equal(t, addr, acc.Address.Hex())
}

func TestParsePrivateKeyInvalid(t *testing.T) {
	for _, in := range []string{"", "  ", "0x", "zz", "0x1234"} {
		_, err := wallet.ParsePrivateKey(in)
		assert.Error(t, err, in)
	}
}

func TestParsePrivateKeys(t *testing.T) {
	k1, a1 := newKeyHex(t)
	k2, a2 := newKeyHex(t)

	accs, err := wallet.ParsePrivateKeys(" " + k1 + " ,, 0x" + k2 + ",")
	require.NoError(t, err)
	require.Len(t, accs, 2)
	assert.Equal(t, a1, accs[0].Address.Hex())
	assert.Equal(t, a2, accs[1].Address.Hex())
}

func TestParsePrivateKeysErrors(t *testing.T) {
	_, err := wallet.ParsePrivateKeys(" , ")
	assert.Error(t, err)

	k1, _ := newKeyHex(t)
	_, err = wallet.ParsePrivateKeys(k1 + ",nothex")
	assert.Error(t, err)
}
