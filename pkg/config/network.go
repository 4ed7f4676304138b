package config

import (
	"fmt"
	"strings"
)

// Network describes one deployment of the subscription manager program:
// the program address, the provider NFT mint, the FXN payment mint and the
// public RPC endpoints.
type Network struct {
	Name            string `json:"name" yaml:"name"`
	ProgramID       string `json:"program_id" yaml:"program_id"`
	NFTTokenAddress string `json:"nft_token_address" yaml:"nft_token_address"`
	FXNMint         string `json:"fxn_mint" yaml:"fxn_mint"`
	RPCEndpoint     string `json:"rpc_endpoint" yaml:"rpc_endpoint"`
	WSEndpoint      string `json:"ws_endpoint" yaml:"ws_endpoint"`
}

// Mainnet is the predefined profile for Solana mainnet-beta.
var Mainnet = Network{
	Name:            "mainnet",
	ProgramID:       "7grtCnm6TmUiB4a6b4roSiVzZCQ5agSz9aj8aYJiWpKE",
	NFTTokenAddress: "3sH789kj7yAtmuJKJQqKnxdWd9Q28qfN1DzkeFZd7ty7",
	FXNMint:         "92cRC6kV5D7TiHX1j56AbkPbffo9jwcXxSDQZ8Mopump",
	RPCEndpoint:     "https://api.mainnet-beta.solana.com",
	WSEndpoint:      "wss://api.mainnet-beta.solana.com",
}

// Testnet is the predefined profile for Solana testnet.
var Testnet = Network{
	Name:            "testnet",
	ProgramID:       "AnPhQYFcJEPBG2JTrvaNne85rXufC1Q97bu29YaWvKDs",
	NFTTokenAddress: "3sH789kj7yAtmuJKJQqKnxdWd9Q28qfN1DzkeFZd7ty7",
	FXNMint:         "34dcPojKodMA2GkH2E9jjNi3gheweipGDaUAgoX73dK8",
	RPCEndpoint:     "https://api.testnet.solana.com",
	WSEndpoint:      "wss://api.testnet.solana.com",
}

// Devnet is the predefined profile for Solana devnet.
var Devnet = Network{
	Name:            "devnet",
	ProgramID:       "AnPhQYFcJEPBG2JTrvaNne85rXufC1Q97bu29YaWvKDs",
	NFTTokenAddress: "3sH789kj7yAtmuJKJQqKnxdWd9Q28qfN1DzkeFZd7ty7",
	FXNMint:         "34dcPojKodMA2GkH2E9jjNi3gheweipGDaUAgoX73dK8",
	RPCEndpoint:     "https://api.devnet.solana.com",
	WSEndpoint:      "wss://api.devnet.solana.com",
}

var profiles = map[string]Network{
	Mainnet.Name: Mainnet,
	Testnet.Name: Testnet,
	Devnet.Name:  Devnet,
}

// NetworkByName returns the predefined profile with the given name
// (case-insensitive; "mainnet-beta" is accepted for mainnet).
func NetworkByName(name string) (Network, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "mainnet-beta" {
		n = Mainnet.Name
	}
	p, ok := profiles[n]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
	return p, nil
}

// fillFromProfile completes a partially specified network. Custom network
// names are left as they are but must carry every address themselves.
func (n *Network) fillFromProfile() error {
	p, err := NetworkByName(n.Name)
	if err != nil {
		if n.ProgramID == "" || n.RPCEndpoint == "" {
			return fmt.Errorf("custom network %q needs program_id and rpc_endpoint: %w", n.Name, err)
		}
		return nil
	}
	n.Name = p.Name
	if n.ProgramID == "" {
		n.ProgramID = p.ProgramID
	}
	if n.NFTTokenAddress == "" {
		n.NFTTokenAddress = p.NFTTokenAddress
	}
	if n.FXNMint == "" {
		n.FXNMint = p.FXNMint
	}
	if n.RPCEndpoint == "" {
		n.RPCEndpoint = p.RPCEndpoint
	}
	if n.WSEndpoint == "" {
		n.WSEndpoint = p.WSEndpoint
	}
	return nil
}

// UnmarshalYAML accepts either a profile name ("devnet") or a full mapping.
func (n *Network) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		p, err := NetworkByName(name)
		if err != nil {
			return err
		}
		*n = p
		return nil
	}
	type plain Network
	var raw plain
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*n = Network(raw)
	return nil
}
