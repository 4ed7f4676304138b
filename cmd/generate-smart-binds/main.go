// Command generate-smart-binds writes typed abigen bindings for the EVM
// subscription manager, collector and collector factory contracts to
// pkg/blockchain/bindings. The SDK itself binds the contracts dynamically;
// the generated package is for applications that prefer typed wrappers.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/abi/abigen"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/blockchain"
)

var contracts = []struct {
	name string
	abi  string
}{
	{"SubscriptionManager", blockchain.SubscriptionManagerABI},
	{"Collector", blockchain.CollectorABI},
	{"CollectorFactory", blockchain.CollectorFactoryABI},
}

func main() {
	bindContent, err := generate("bindings")
	if err != nil {
		log.Fatalf("Failed to generate binding: %v", err)
	}

	root, err := moduleRoot()
	if err != nil {
		log.Fatalf("Failed to locate module root: %v", err)
	}

	outDir := filepath.Join(root, "pkg", "blockchain", "bindings")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", outDir, err)
	}
	outPath := filepath.Join(outDir, "fxn_contracts.go")
	if err := os.WriteFile(outPath, []byte(bindContent), 0o600); err != nil {
		log.Fatalf("Failed to write ABI binding: %v", err)
	}
	fmt.Println("wrote", outPath)
}

// generate renders the bindings of every contract into package pkg.
// Bytecode is left empty, so no deploy helpers are emitted.
func generate(pkg string) (string, error) {
	types := make([]string, len(contracts))
	abis := make([]string, len(contracts))
	bytecodes := make([]string, len(contracts))
	for i, c := range contracts {
		types[i] = c.name
		abis[i] = c.abi
	}
	return abigen.Bind(types, abis, bytecodes, nil, pkg, nil, nil)
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("go.mod not found from %q", dir)
		}
		dir = next
	}
}
