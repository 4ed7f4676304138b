// Package config provides configuration management for the FXN SDK.
//
// This package defines the Config structure that controls all SDK behavior:
// the network profile, RPC endpoints, program and mint addresses, signing
// keys, the EVM client, and timeouts.
//
// # Basic Configuration
//
// The zero Config is usable for read-only access to devnet:
//
//	cfg := &config.Config{}
//	if err := cfg.Validate(); err != nil { ... } // devnet profile applied
//
// # Network Selection
//
// Three predefined profiles are available. They differ only in the deployed
// program address, the token mints and the RPC endpoints:
//
//	config.Mainnet - Solana mainnet-beta
//	config.Testnet - Solana testnet
//	config.Devnet  - Solana devnet (default)
//
// Any field of the profile can be overridden on Config (RPCAddr, WSAddr,
// ProgramID, NFTTokenAddress, FXNMint). A custom network must carry at
// least a program address and an RPC endpoint:
//
//	local := config.Network{
//		Name:        "localnet",
//		ProgramID:   "AnPhQYFcJEPBG2JTrvaNne85rXufC1Q97bu29YaWvKDs",
//		RPCEndpoint: "http://127.0.0.1:8899",
//	}
//
// # Signing
//
// Write operations need a Solana keypair, given either as a base58 secret
// key (PrivateKey) or a solana-keygen JSON file (KeypairPath). Without one,
// write wrappers fail fast with subscription.ErrWalletNotConnected.
//
// # Files and Environment
//
// Load reads YAML; the network may be a profile name or a full mapping:
//
//	network: mainnet
//	commitment: finalized
//	keypair_path: ~/.config/solana/id.json
//	timeouts:
//	  chain_submit: 45s
//
// FromEnv reads an optional .env file and FXN_* variables (FXN_NETWORK,
// FXN_RPC_URL, FXN_WS_URL, FXN_PROGRAM_ID, FXN_PRIVATE_KEY, FXN_KEYPAIR,
// FXN_COMMITMENT, FXN_TIMEOUT, FXN_DEBUG, FXN_EVM_RPC_URL,
// FXN_EVM_PRIVATE_KEY).
//
// # Timeouts
//
// Zero values are replaced with defaults via WithDefaults(). ChainSubmit
// defaults to 30 seconds and the commitment to "confirmed".
//
// # Configuration Validation
//
// Validate() applies defaults and checks every address. An invalid address
// constant is a startup error; sdk.NewSDK treats it as fatal.
//
// # Thread Safety
//
// Config instances should be created once and not modified after passing
// to the SDK. The SDK keeps its own validated copy.
package config
