package evmclient

import (
	"context"
	"math/big"
	"sync"
	"time"

	"disperse_back/internal/wallet"
	"disperse_back/pkg/cache"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const feeCapBaseMultiplier = 2

var ErrTxReverted = errors.New("transaction reverted")

// Backend is the part of ethclient.Client the sender needs. The simulated backend satisfies it too.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Config struct {
	// ChainID of 0 means "ask the node".
	ChainID        int64
	Confirmations  uint64
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
	GasMarginPct   uint64
}

type EvmClient struct {
	backend Backend
	cfg     Config
	nonces  *cache.NonceCache
	closer  func()

	mu      sync.Mutex
	chainID *big.Int
}

// Dial connects to rpcURL over HTTP(S) or WS.
func Dial(ctx context.Context, rpcURL string, cfg Config) (*EvmClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial RPC node")
	}
	c := NewEvmClient(client, cfg)
	c.closer = client.Close
	return c, nil
}

func NewEvmClient(backend Backend, cfg Config) *EvmClient {
	if cfg.Confirmations == 0 {
		cfg.Confirmations = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	c := &EvmClient{
		backend: backend,
		cfg:     cfg,
		nonces:  cache.NewNonceCache(cache.DefaultNonceTTL),
	}
	if cfg.ChainID > 0 {
		c.chainID = big.NewInt(cfg.ChainID)
	}
	return c
}

func (c *EvmClient) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// ChainID returns the configured chain id, asking the node once when none was configured.
func (c *EvmClient) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return c.chainID, nil
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain id")
	}
	c.chainID = id
	return id, nil
}

// Send signs a contract call from the account, broadcasts it and blocks until it has the
// configured number of confirmations. value may be nil.
func (c *EvmClient) Send(ctx context.Context, from *wallet.Account, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	if value == nil {
		value = new(big.Int)
	}

	chainID, err := c.ChainID(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx, err := c.buildTx(ctx, chainID, from, to, data, value)
	if err != nil {
		return common.Hash{}, err
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), from.Key)
	if err != nil {
		c.nonces.Release(from.Address, tx.Nonce())
		return common.Hash{}, errors.Wrap(err, "failed to sign transaction")
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		c.nonces.Release(from.Address, tx.Nonce())
		return common.Hash{}, errors.Wrap(err, "failed to send transaction")
	}

	log := logrus.WithFields(logrus.Fields{
		"from":    from.Address.Hex(),
		"to":      to.Hex(),
		"nonce":   signed.Nonce(),
		"tx_hash": signed.Hash().Hex(),
	})
	log.Info("transaction broadcast")

	receipt, err := c.WaitConfirmed(ctx, signed.Hash())
	if err != nil {
		return signed.Hash(), err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return signed.Hash(), errors.Wrapf(ErrTxReverted, "tx %s", signed.Hash().Hex())
	}

	log.WithField("block", receipt.BlockNumber).Info("transaction confirmed")
	return signed.Hash(), nil
}

func (c *EvmClient) buildTx(ctx context.Context, chainID *big.Int, from *wallet.Account, to common.Address, data []byte, value *big.Int) (*types.Transaction, error) {
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from.Address,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate gas")
	}
	gas += gas * c.cfg.GasMarginPct / 100

	tipCap, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch latest header")
	}
	baseFee := head.BaseFee
	if baseFee == nil {
		baseFee = new(big.Int)
	}
	feeCap := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(feeCapBaseMultiplier)), tipCap)

	nonce, err := c.nonces.Reserve(ctx, from.Address, c.backend.PendingNonceAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch pending nonce")
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	}), nil
}

// WaitConfirmed polls until the receipt is at least Confirmations blocks deep.
func (c *EvmClient) WaitConfirmed(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if c.cfg.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			head, err := c.backend.BlockNumber(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "failed to get block number")
			}
			if receipt.BlockNumber != nil && head+1 >= receipt.BlockNumber.Uint64()+c.cfg.Confirmations {
				return receipt, nil
			}
		case errors.Is(err, ethereum.NotFound):
		default:
			return nil, errors.Wrapf(err, "failed to get receipt for %s", txHash.Hex())
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "waiting for %s", txHash.Hex())
		case <-ticker.C:
		}
	}
}
