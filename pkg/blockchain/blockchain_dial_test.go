package blockchain

import (
	"context"
	"testing"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
)

func TestInitEvm_Unreachable(t *testing.T) {
	start := time.Now()
	eth, err := InitEvm(context.Background(), config.EVM{RPCAddr: "http://127.0.0.1:1"}, config.Timeouts{Dial: 2 * time.Second})
	if err == nil {
		eth.Close()
		t.Fatal("expected error dialing")
	}
	if time.Since(start) > 6*time.Second {
		t.Fatalf("InitEvm took too long")
	}
}
