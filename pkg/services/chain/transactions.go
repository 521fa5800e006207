package chain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrMissingPrivateKey is returned by write-intent helpers when no key
// material was supplied.
var ErrMissingPrivateKey = errors.New("a private key or keystore is required")

// Credentials is the optional key material supplied by the caller. It is
// only used to derive the sender of a prepared transaction; nothing is
// signed and the key is never logged.
type Credentials struct {
	PrivateKey       string
	KeystorePath     string
	KeystorePassword string
}

// Present reports whether any key material was supplied.
func (c Credentials) Present() bool {
	return c.PrivateKey != "" || c.KeystorePath != ""
}

// Sender derives the account address of the supplied key.
func (c Credentials) Sender() (common.Address, error) {
	pk, err := c.privateKey()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(pk.PublicKey), nil
}

func (c Credentials) privateKey() (*ecdsa.PrivateKey, error) {
	switch {
	case c.PrivateKey != "":
		pk, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.PrivateKey), "0x"))
		if err != nil {
			// the underlying error may echo key material
			return nil, fmt.Errorf("parsing private key: invalid secp256k1 key")
		}
		return pk, nil
	case c.KeystorePath != "":
		return loadPrivateKeyFromKeystore(c.KeystorePath, c.KeystorePassword)
	default:
		return nil, ErrMissingPrivateKey
	}
}

// loadPrivateKeyFromKeystore loads a private key from an encrypted keystore file
func loadPrivateKeyFromKeystore(keystorePath, password string) (*ecdsa.PrivateKey, error) {
	keystoreFile, err := os.Open(keystorePath)
	if err != nil {
		return nil, fmt.Errorf("reading keystore file: %w", err)
	}
	defer keystoreFile.Close()

	return loadPrivateKeyFromReader(keystoreFile, password)
}

func loadPrivateKeyFromReader(reader io.Reader, password string) (*ecdsa.PrivateKey, error) {
	keystoreJSON, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading keystore file: %w", err)
	}

	key, err := keystore.DecryptKey(keystoreJSON, password)
	if err != nil {
		return nil, fmt.Errorf("decrypting keystore: %w", err)
	}

	return key.PrivateKey, nil
}
