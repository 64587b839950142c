package constants

import "github.com/ethereum/go-ethereum/common"

const MAINNET_API_URL = "https://api.hyperliquid.xyz"
const TESTNET_API_URL = "https://api.hyperliquid-testnet.xyz"
const LOCAL_API_URL = "http://localhost:3001"

// Chain id used in the domain separator for every agent-signed action,
// regardless of which network the builder targets.
const AGENT_CHAIN_ID = 1337

// Settlement chain ids for user-signed actions.
const ARBITRUM_CHAIN_ID = 42161
const ARBITRUM_SEPOLIA_CHAIN_ID = 421614

// Hex forms of the settlement chain ids, embedded verbatim in user-signed
// action payloads as the signatureChainId field.
const ARBITRUM_CHAIN_ID_HEX = "0xa4b1"
const ARBITRUM_SEPOLIA_CHAIN_ID_HEX = "0x66eee"

// Deposits below this many USDC base units (6 decimals) are swallowed by
// the bridge without crediting the account.
const MIN_DEPOSIT_USDC = 5_000_000

var ZERO_ADDRESS = common.Address{}

var BRIDGE_MAINNET = common.HexToAddress("0x2df1c51e09aecf9cacb7bc98cb1742757f163df7")
var BRIDGE_TESTNET = common.HexToAddress("0x08cfc1B6b2dCF36A1480b99353A354AA8AC56f89")

var USDC_MAINNET = common.HexToAddress("0xaf88d065e77c8cC2239327C5EDb3A432268e5831")
var USDC_TESTNET = common.HexToAddress("0x1baAbB04529D43a73232B713C0FE471f7c7334d5")
