package service

import (
	"context"
	"math/big"

	"disperse_back/internal/wallet"
	"disperse_back/models"
	"disperse_back/pkg/repository"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrSignerNotConfigured = errors.New("signer not configured")
)

// requestError keeps the caller-facing message intact while matching ErrInvalidRequest.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func (e *requestError) Is(target error) bool { return target == ErrInvalidRequest }

func invalid(msg string) error {
	return &requestError{msg: msg}
}

func invalidErr(err error) error {
	return &requestError{msg: err.Error()}
}

// Sender signs, broadcasts and confirms a single transaction.
type Sender interface {
	Send(ctx context.Context, from *wallet.Account, to common.Address, data []byte, value *big.Int) (common.Hash, error)
}

type Signers struct {
	Disperse *wallet.Account
	Collect  []*wallet.Account
}

type Disperse interface {
	DisperseETH(ctx context.Context, req models.DisperseEthRequest) ([]string, error)
	DisperseERC20(ctx context.Context, req models.DisperseErc20Request) ([]string, error)
}

type Collect interface {
	CollectETH(ctx context.Context, req models.CollectEthRequest) ([]string, error)
	CollectERC20(ctx context.Context, req models.CollectErc20Request) ([]string, error)
}

type Transactions interface {
	List(ctx context.Context, limit int) ([]models.TxRecord, error)
}

type Service struct {
	Disperse
	Collect
	Transactions
}

func NewService(repos *repository.Repository, sender Sender, signers Signers, contract common.Address) *Service {
	tx := &txSender{sender: sender, journal: repos.Journal, contract: contract}
	return &Service{
		Disperse:     NewDisperseService(tx, signers.Disperse),
		Collect:      NewCollectService(tx, signers.Collect),
		Transactions: NewTransactionsService(repos.Journal),
	}
}

// txSender sends through the chain client and journals every broadcast hash.
type txSender struct {
	sender   Sender
	journal  repository.Journal
	contract common.Address
}

func (s *txSender) send(ctx context.Context, kind string, from *wallet.Account, to common.Address, data []byte, value *big.Int) (common.Hash, error) {
	hash, err := s.sender.Send(ctx, from, to, data, value)
	if hash != (common.Hash{}) {
		s.record(ctx, kind, from, to, hash, value)
	}
	if err != nil {
		return hash, errors.Wrapf(err, "%s from %s", kind, from.Address.Hex())
	}
	return hash, nil
}

func (s *txSender) record(ctx context.Context, kind string, from *wallet.Account, to common.Address, hash common.Hash, value *big.Int) {
	rec := models.TxRecord{
		Kind:   kind,
		From:   from.Address.Hex(),
		To:     to.Hex(),
		TxHash: hash.Hex(),
		Value:  "0",
	}
	if value != nil {
		rec.Value = value.String()
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		logrus.WithError(err).WithField("tx_hash", rec.TxHash).Warn("failed to journal transaction")
	}
}

func hexHashes(hashes []common.Hash) []string {
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, h.Hex())
	}
	return out
}
