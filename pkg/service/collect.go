package service

import (
	"context"

	"disperse_back/internal/wallet"
	"disperse_back/models"
	"disperse_back/pkg/amount"
	"disperse_back/pkg/calldata"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// CollectService sends one transaction per collect key, strictly in key order.
type CollectService struct {
	tx      *txSender
	signers []*wallet.Account
}

func NewCollectService(tx *txSender, signers []*wallet.Account) *CollectService {
	return &CollectService{tx: tx, signers: signers}
}

func (s *CollectService) CollectETH(ctx context.Context, req models.CollectEthRequest) ([]string, error) {
	if len(s.signers) == 0 {
		return nil, ErrSignerNotConfigured
	}

	value, err := amount.ParseUint256(req.Amount)
	if err != nil {
		return nil, invalidErr(err)
	}
	percents, err := amount.ParsePercents(req.Percents)
	if err != nil {
		return nil, invalidErr(err)
	}
	data, err := calldata.EncodeCollectETH(value, percents)
	if err != nil {
		return nil, invalidErr(err)
	}

	hashes := make([]common.Hash, 0, len(s.signers))
	for _, signer := range s.signers {
		hash, err := s.tx.send(ctx, models.KindCollectETH, signer, s.tx.contract, data, value)
		if err != nil {
			logSent(hashes, err)
			return nil, err
		}
		hashes = append(hashes, hash)
	}

	logrus.WithFields(logrus.Fields{
		"senders": len(hashes),
		"amount":  value.String(),
	}).Info("collect eth confirmed")
	return hexHashes(hashes), nil
}

// CollectERC20 approves the contract from each key before that key's collect call.
// The collect call carries amount as native value, as the payable overload expects.
func (s *CollectService) CollectERC20(ctx context.Context, req models.CollectErc20Request) ([]string, error) {
	if len(s.signers) == 0 {
		return nil, ErrSignerNotConfigured
	}

	token, err := calldata.ParseAddress(req.Token)
	if err != nil {
		return nil, invalidErr(err)
	}
	value, err := amount.ParseUint256(req.Amount)
	if err != nil {
		return nil, invalidErr(err)
	}
	percents, err := amount.ParsePercents(req.Percents)
	if err != nil {
		return nil, invalidErr(err)
	}
	data, err := calldata.EncodeCollectERC20(token, value, percents)
	if err != nil {
		return nil, invalidErr(err)
	}
	approve, err := calldata.EncodeApprove(s.tx.contract, amount.MaxUint256)
	if err != nil {
		return nil, err
	}

	hashes := make([]common.Hash, 0, len(s.signers))
	for _, signer := range s.signers {
		approveHash, err := s.tx.send(ctx, models.KindApprove, signer, token, approve, nil)
		if err != nil {
			logSent(hashes, err)
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"from":    signer.Address.Hex(),
			"token":   token.Hex(),
			"tx_hash": approveHash.Hex(),
		}).Info("approve confirmed")

		hash, err := s.tx.send(ctx, models.KindCollectERC20, signer, s.tx.contract, data, value)
		if err != nil {
			logSent(hashes, err)
			return nil, err
		}
		hashes = append(hashes, hash)
	}

	logrus.WithFields(logrus.Fields{
		"senders": len(hashes),
		"token":   token.Hex(),
		"amount":  value.String(),
	}).Info("collect erc20 confirmed")
	return hexHashes(hashes), nil
}

func logSent(hashes []common.Hash, err error) {
	if len(hashes) == 0 {
		return
	}
	logrus.WithError(err).WithField("tx_hashes", hexHashes(hashes)).Error("collect stopped after partial broadcast")
}
