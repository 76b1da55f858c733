// internal/infra/solana/instructions.go
//
// Instruction catalog: pure factories that turn fully-resolved addresses
// and parameters into single ready-to-serialize instructions. No
// validation, no side effects; input hygiene is the validator's job.
package solana

import (
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/compute_budget"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	spltoken "github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokendom "mintforge/internal/domain/token"
)

// ScaleToBaseUnits converts a whole-unit amount to base units at the
// service's fixed decimal precision.
func ScaleToBaseUnits(wholeUnits int64) uint64 {
	return uint64(wholeUnits) * tokendom.BaseUnitsPerToken
}

// ComputeUnitLimitInstruction declares the compute ceiling for a
// transaction.
func ComputeUnitLimitInstruction(units uint32) types.Instruction {
	return compute_budget.SetComputeUnitLimit(compute_budget.SetComputeUnitLimitParam{
		Units: units,
	})
}

// ComputeUnitPriceInstruction attaches a priority fee in micro-lamports
// per compute unit.
func ComputeUnitPriceInstruction(microLamports uint64) types.Instruction {
	return compute_budget.SetComputeUnitPrice(compute_budget.SetComputeUnitPriceParam{
		MicroLamports: microLamports,
	})
}

// CreateMintAccountInstruction allocates the mint account, rent-funded
// by the payer and owned by the token program.
func CreateMintAccountInstruction(payer, mint common.PublicKey, rentLamports uint64) types.Instruction {
	return system.CreateAccount(system.CreateAccountParam{
		From:     payer,
		New:      mint,
		Owner:    common.TokenProgramID,
		Lamports: rentLamports,
		Space:    spltoken.MintAccountSize,
	})
}

// InitializeMintInstruction initializes the mint with the custodial
// authority as both mint and freeze authority.
func InitializeMintInstruction(mint, authority common.PublicKey) types.Instruction {
	return spltoken.InitializeMint(spltoken.InitializeMintParam{
		Decimals:   tokendom.Decimals,
		Mint:       mint,
		MintAuth:   authority,
		FreezeAuth: &authority,
	})
}

// DeriveMetadataAddress derives the metadata PDA for a mint.
func DeriveMetadataAddress(mint common.PublicKey) (common.PublicKey, error) {
	return token_metadata.GetTokenMetaPubkey(mint)
}

// CreateMetadataInstruction creates the on-chain metadata account for
// the mint. The URI intentionally stays empty; metadata-content hosting
// lives outside this service.
func CreateMetadataInstruction(metadata, mint, authority common.PublicKey, name, symbol, uri string) types.Instruction {
	return token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
		Metadata:                metadata,
		Mint:                    mint,
		MintAuthority:           authority,
		UpdateAuthority:         authority,
		Payer:                   authority,
		UpdateAuthorityIsSigner: true,
		IsMutable:               true,
		Data: token_metadata.DataV2{
			Name:                 name,
			Symbol:               symbol,
			Uri:                  uri,
			SellerFeeBasisPoints: 0,
		},
		CollectionDetails: nil,
	})
}

// DeriveAssociatedAccount derives the deterministic token account for an
// owner/mint pair.
func DeriveAssociatedAccount(owner, mint common.PublicKey) (common.PublicKey, error) {
	ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
	return ata, err
}

// CreateAssociatedAccountInstruction creates the owner's associated
// token account for the mint, paid by the custodial signer.
func CreateAssociatedAccountInstruction(payer, owner, mint, ata common.PublicKey) types.Instruction {
	return associated_token_account.CreateAssociatedTokenAccount(
		associated_token_account.CreateAssociatedTokenAccountParam{
			Funder:                 payer,
			Owner:                  owner,
			Mint:                   mint,
			AssociatedTokenAccount: ata,
		},
	)
}

// MintToInstruction mints wholeUnits (scaled to base units) into dest.
func MintToInstruction(mint, dest, authority common.PublicKey, wholeUnits int64) types.Instruction {
	return spltoken.MintTo(spltoken.MintToParam{
		Mint:   mint,
		To:     dest,
		Auth:   authority,
		Amount: ScaleToBaseUnits(wholeUnits),
	})
}
