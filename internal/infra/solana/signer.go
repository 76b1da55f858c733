// internal/infra/solana/signer.go
package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"

	"mintforge/internal/infra/config"
)

var ErrSignerNotConfigured = errors.New("custodial_signer: no key material configured")

// CustodialSigner is the process-wide backend identity: fee payer, mint
// authority and freeze authority for every mint this service creates.
// It is loaded once at startup and read-only afterwards.
type CustodialSigner struct {
	Account types.Account
}

// Address returns the signer's base58 public key.
func (s *CustodialSigner) Address() string {
	return s.Account.PublicKey.ToBase58()
}

// LoadCustodialSigner restores the custodial keypair. Resolution order:
//
//  1. CUSTODIAL_KEY_SECRET  — Secret Manager version path holding a
//     solana-keygen keypair JSON
//  2. CUSTODIAL_KEYPAIR_FILE — local keypair JSON file
//  3. CUSTODIAL_KEYPAIR      — inline keypair JSON
//
// Missing or malformed material is fatal: the service cannot serve any
// request without its signer.
func LoadCustodialSigner(ctx context.Context, cfg *config.Config) (*CustodialSigner, error) {
	var (
		raw    []byte
		source string
		err    error
	)

	switch {
	case cfg.CustodialKeySecret != "":
		source = "secret-manager"
		raw, err = fetchSecret(ctx, cfg.CustodialKeySecret)
	case cfg.CustodialKeypairFile != "":
		source = "file"
		raw, err = os.ReadFile(cfg.CustodialKeypairFile)
	case cfg.CustodialKeypair != "":
		source = "env"
		raw = []byte(cfg.CustodialKeypair)
	default:
		return nil, ErrSignerNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("custodial_signer: load from %s: %w", source, err)
	}

	keyBytes, err := decodeKeypairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("custodial_signer: %w", err)
	}

	acc, err := types.AccountFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("custodial_signer: AccountFromBytes: %w", err)
	}

	log.Printf("[custodial-signer] loaded from %s pubkey=%s", source, acc.PublicKey.ToBase58())

	return &CustodialSigner{Account: acc}, nil
}

func fetchSecret(ctx context.Context, name string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("AccessSecretVersion: %w", err)
	}
	if resp == nil || resp.Payload == nil || len(resp.Payload.Data) == 0 {
		return nil, errors.New("secret payload is empty")
	}
	return resp.Payload.Data, nil
}

// decodeKeypairJSON restores the 64-byte key array from a solana-keygen
// keypair JSON. Canonically [u8;64]; the [int,...] form is also accepted.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var keyBytes []byte
	if err := json.Unmarshal(data, &keyBytes); err == nil && len(keyBytes) == ed25519.PrivateKeySize {
		return keyBytes, nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("unmarshal keypair json: %w", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(ints), ed25519.PrivateKeySize)
	}

	keyBytes = make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("keypair byte out of range at index %d: %d", i, v)
		}
		keyBytes[i] = byte(v)
	}
	return keyBytes, nil
}
