/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
)

const (
	// KoblitzCreatorPrefix prefixes a Bitcoin address to form a key identifier that needs no key document.
	KoblitzCreatorPrefix = "ecdsa-koblitz-pubkey:"

	bitcoinMessageMagic = "Bitcoin Signed Message:\n"
)

// KoblitzSigner signs with a secp256k1 key using the Bitcoin signed message scheme.
type KoblitzSigner struct {
	wif *btcutil.WIF
}

// NewKoblitzSigner creates a new KoblitzSigner from a WIF encoded private key.
func NewKoblitzSigner(privateKeyWif string) (*KoblitzSigner, error) {
	wif, err := btcutil.DecodeWIF(privateKeyWif)
	if err != nil {
		return nil, fmt.Errorf("%w: decode WIF: %w", ErrKeyFormat, err)
	}

	return &KoblitzSigner{wif: wif}, nil
}

// Sign produces a 65 byte recoverable compact signature over a message hash, see BitcoinMessageHash.
func (s *KoblitzSigner) Sign(hash []byte) ([]byte, error) {
	sig, err := btcec.SignCompact(btcec.S256(), s.wif.PrivKey, hash, s.wif.CompressPubKey)
	if err != nil {
		return nil, fmt.Errorf("sign compact: %w", err)
	}

	return sig, nil
}

// KeyFormat returns KeyFormatWIFSecp256k1.
func (s *KoblitzSigner) KeyFormat() KeyFormat {
	return KeyFormatWIFSecp256k1
}

// Address returns the mainnet P2PKH address of the signer's public key.
func (s *KoblitzSigner) Address() (string, error) {
	return KoblitzAddress(s.wif.SerializePubKey())
}

// BitcoinMessageHash returns DoubleSHA256(varstr(magic) || varstr(message)).
func BitcoinMessageHash(message []byte) []byte {
	var buf bytes.Buffer

	// writes to a bytes.Buffer do not fail
	_ = wire.WriteVarString(&buf, 0, bitcoinMessageMagic)
	_ = wire.WriteVarString(&buf, 0, string(message))

	return chainhash.DoubleHashB(buf.Bytes())
}

// KoblitzAddress returns the mainnet P2PKH address for a serialized secp256k1 public key.
func KoblitzAddress(serializedPubKey []byte) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(serializedPubKey), &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("%w: derive address: %w", ErrKeyFormat, err)
	}

	return addr.EncodeAddress(), nil
}

// KoblitzCreator returns the creator URI for a Bitcoin address.
func KoblitzCreator(address string) string {
	return KoblitzCreatorPrefix + address
}
