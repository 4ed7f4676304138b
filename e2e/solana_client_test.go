//go:build e2e

package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/sdk"
)

func TestDevnetReads(t *testing.T) {
	if os.Getenv("FXN_E2E_DEVNET") == "" {
		t.Skip("FXN_E2E_DEVNET not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Config{Network: config.Devnet, RPCAddr: os.Getenv("FXN_RPC_URL")}
	core, err := sdk.New(ctx, cfg)
	if err != nil {
		t.Fatalf("sdk.New error: %v", err)
	}
	defer core.Close()

	state, err := core.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState error: %v", err)
	}
	if state.Owner.IsZero() {
		t.Fatal("state has no owner")
	}

	agents, err := core.ListAgents(ctx)
	if err != nil {
		t.Fatalf("ListAgents error: %v", err)
	}
	t.Logf("%d agents registered on devnet", len(agents))
}
