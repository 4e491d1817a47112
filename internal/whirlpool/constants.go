package whirlpool

import (
	"github.com/gagliardetto/solana-go"

	"whirlpoolScope/internal/model"
)

// ProgramID is the Orca Whirlpool program.
var ProgramID = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")

// Anchor account discriminators: sha256("account:<Name>")[:8].
var (
	WhirlpoolDiscriminator        = [8]byte{63, 149, 209, 12, 225, 128, 99, 9}
	FixedTickArrayDiscriminator   = [8]byte{69, 97, 189, 190, 110, 7, 66, 187}
	DynamicTickArrayDiscriminator = [8]byte{17, 216, 246, 142, 225, 199, 218, 56}
)

const (
	TickArraySize = model.TickArraySize

	MinTickIndex int32 = -443636
	MaxTickIndex int32 = 443636

	discriminatorSize = 8
	publicKeySize     = 32
	u128Size          = 16
	rewardCount       = 3

	// initialized(1) + liquidity_net(16) + liquidity_gross(16) + fee_growth_outside_a/b(32) + rewards(48)
	fixedTickSize = 1 + 7*u128Size
	// dynamic ticks carry the same payload without the initialized byte
	dynamicTickDataSize = 7 * u128Size

	// FixedTickArraySize is the account size of a fixed tick array.
	FixedTickArraySize = discriminatorSize + 4 + TickArraySize*fixedTickSize + publicKeySize

	// FixedTickArrayWhirlpoolOffset is where the owning whirlpool sits in a fixed tick array.
	FixedTickArrayWhirlpoolOffset = discriminatorSize + 4 + TickArraySize*fixedTickSize
	// DynamicTickArrayWhirlpoolOffset is where the owning whirlpool sits in a dynamic tick array.
	DynamicTickArrayWhirlpoolOffset = discriminatorSize + 4

	dynamicTickArrayHeaderSize = discriminatorSize + 4 + publicKeySize + u128Size

	dynamicTickUninitialized = 0
	dynamicTickInitialized   = 1

	poolTickSpacingOffset = discriminatorSize + publicKeySize + 1
	poolLiquidityOffset   = poolTickSpacingOffset + 2 + 2 + 2 + 2
	poolTokenMintAOffset  = poolLiquidityOffset + 2*u128Size + 4 + 8 + 8
	poolTokenMintBOffset  = poolTokenMintAOffset + 2*publicKeySize + u128Size
	poolMinSize           = poolTokenMintBOffset + publicKeySize

	mintDecimalsOffset = 4 + publicKeySize + 8
)
