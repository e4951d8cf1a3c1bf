package wallet

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Account is a signing key together with the address it controls.
type Account struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// ParsePrivateKey decodes a hex private key, with or without the 0x prefix.
func ParsePrivateKey(privKeyHex string) (*Account, error) {
	privKeyHex = strings.TrimPrefix(strings.TrimSpace(privKeyHex), "0x")
	if privKeyHex == "" {
		return nil, errors.New("empty private key")
	}

	privKey, err := crypto.HexToECDSA(privKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}

	return &Account{
		Key:     privKey,
		Address: crypto.PubkeyToAddress(privKey.PublicKey),
	}, nil
}

// ParsePrivateKeys parses a comma separated list of keys. Blank entries are skipped.
func ParsePrivateKeys(list string) ([]*Account, error) {
	var accounts []*Account
	for i, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		acc, err := ParsePrivateKey(part)
		if err != nil {
			return nil, errors.Wrapf(err, "key #%d", i)
		}
		accounts = append(accounts, acc)
	}

	if len(accounts) == 0 {
		return nil, errors.New("no private keys provided")
	}
	return accounts, nil
}
