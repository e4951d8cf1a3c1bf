package service

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"disperse_back/models"
	"disperse_back/pkg/evmclient"
	"disperse_back/pkg/repository"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/backends"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The simulated chain has no contract at the target address, so calls behave as plain value transfers.
func TestDisperseETHOnSimulatedChain(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	signers := Signers{Disperse: newTestAccount(t)}
	signers.Collect = append(signers.Collect, newTestAccount(t), newTestAccount(t))

	alloc := types.GenesisAlloc{}
	for _, acc := range append(signers.Collect, signers.Disperse) {
		alloc[acc.Address] = types.Account{Balance: new(big.Int).Lsh(big.NewInt(1), 70)}
	}
	backend := backends.NewSimulatedBackend(alloc, 30_000_000)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-time.After(10 * time.Millisecond):
				backend.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(done)
		wg.Wait()
		backend.Close()
	})

	client := evmclient.NewEvmClient(backend, evmclient.Config{
		ChainID:      1337,
		PollInterval: 5 * time.Millisecond,
		GasMarginPct: 20,
	})
	journal := &fakeJournal{}
	target := common.HexToAddress("0x00000000000000000000000000000000c0ffee00")
	svc := NewService(&repository.Repository{Journal: journal}, client, signers, target)

	hashes, err := svc.DisperseETH(ctx, models.DisperseEthRequest{
		To:      []string{alice.Hex(), bob.Hex()},
		Amounts: []string{"100", "250"},
	})
	require.NoError(t, err)
	require.Len(t, hashes, 1)

	receipt, err := backend.TransactionReceipt(ctx, common.HexToHash(hashes[0]))
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	hashes, err = svc.CollectETH(ctx, models.CollectEthRequest{Amount: "1000"})
	require.NoError(t, err)
	assert.Len(t, hashes, 2)
	assert.NotEqual(t, hashes[0], hashes[1])

	balance, err := backend.BalanceAt(ctx, target, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(350+2*1000), balance.Int64())
	assert.Len(t, journal.records, 3)
}
