// cmd/keygen/main.go
//
// Small developer utility that generates a custodial signer wallet:
// - generates a Solana-compatible ed25519 keypair
// - prints the base58 public key (the custodial address)
// - saves the secret key as a Solana-CLI-compatible JSON array
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/blocto/solana-go-sdk/types"
)

const fileName = "custodial-signer.json"

func main() {
	acc := types.NewAccount()

	secret := make([]int, len(acc.PrivateKey))
	for i, b := range acc.PrivateKey {
		secret[i] = int(b)
	}

	data, err := json.MarshalIndent(secret, "", "  ")
	if err != nil {
		log.Fatalf("marshal secret key json: %v", err)
	}

	if err := os.WriteFile(fileName, data, 0o600); err != nil {
		log.Fatalf("write %s: %v", fileName, err)
	}

	fmt.Println("============================================")
	fmt.Println("Custodial signer wallet generated")
	fmt.Println("============================================")
	fmt.Printf("Public key (custodial address):\n  %s\n\n", acc.PublicKey.ToBase58())
	fmt.Printf("Secret key file (Solana-compatible JSON):\n  %s\n\n", fileName)
	fmt.Println("IMPORTANT:")
	fmt.Println("  - never commit this JSON file")
	fmt.Println("  - register it in Secret Manager and remove the local copy")
}
