package config

import (
	"testing"

	"gopkg.in/yaml.v2"
)

func TestNetworkByName(t *testing.T) {
	tests := []struct {
		in   string
		want Network
	}{
		{"mainnet", Mainnet},
		{"mainnet-beta", Mainnet},
		{"TESTNET", Testnet},
		{" devnet ", Devnet},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NetworkByName(tt.in)
			if err != nil {
				t.Fatalf("NetworkByName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("got %#v want %#v", got, tt.want)
			}
		})
	}

	if _, err := NetworkByName("localnet"); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

// TestNetwork_Presets verifies that every predefined profile carries valid
// addresses and that the profiles differ only where deployments differ.
func TestNetwork_Presets(t *testing.T) {
	for _, n := range []Network{Mainnet, Testnet, Devnet} {
		for _, addr := range []string{n.ProgramID, n.NFTTokenAddress, n.FXNMint} {
			if err := ValidateAddress(addr); err != nil {
				t.Fatalf("%s: %v", n.Name, err)
			}
		}
		if n.RPCEndpoint == "" || n.WSEndpoint == "" {
			t.Fatalf("%s: missing endpoints", n.Name)
		}
	}
	if Mainnet.ProgramID == Devnet.ProgramID {
		t.Fatal("mainnet and devnet must use different program deployments")
	}
	if Testnet.NFTTokenAddress != Devnet.NFTTokenAddress {
		t.Fatal("expected shared NFT mint")
	}
}

func TestNetwork_UnmarshalYAML(t *testing.T) {
	var byName struct {
		Network Network `yaml:"network"`
	}
	if err := yaml.Unmarshal([]byte("network: testnet\n"), &byName); err != nil {
		t.Fatalf("unmarshal name: %v", err)
	}
	if byName.Network != Testnet {
		t.Fatalf("got %#v", byName.Network)
	}

	var mapping struct {
		Network Network `yaml:"network"`
	}
	doc := "network:\n  name: localnet\n  program_id: " + Devnet.ProgramID + "\n  rpc_endpoint: http://127.0.0.1:8899\n"
	if err := yaml.Unmarshal([]byte(doc), &mapping); err != nil {
		t.Fatalf("unmarshal mapping: %v", err)
	}
	if mapping.Network.Name != "localnet" || mapping.Network.RPCEndpoint != "http://127.0.0.1:8899" {
		t.Fatalf("got %#v", mapping.Network)
	}

	var bad struct {
		Network Network `yaml:"network"`
	}
	if err := yaml.Unmarshal([]byte("network: moonnet\n"), &bad); err == nil {
		t.Fatal("expected error for unknown profile name")
	}
}
