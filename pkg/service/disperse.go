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

const lengthMismatch = "Recipients and amounts length mismatch"

type DisperseService struct {
	tx     *txSender
	signer *wallet.Account
}

func NewDisperseService(tx *txSender, signer *wallet.Account) *DisperseService {
	return &DisperseService{tx: tx, signer: signer}
}

func (s *DisperseService) DisperseETH(ctx context.Context, req models.DisperseEthRequest) ([]string, error) {
	if len(req.To) != len(req.Amounts) {
		return nil, invalid(lengthMismatch)
	}
	if s.signer == nil {
		return nil, ErrSignerNotConfigured
	}

	to, err := calldata.ParseAddresses(req.To)
	if err != nil {
		return nil, invalidErr(err)
	}
	amounts, err := amount.ParseUint256List(req.Amounts)
	if err != nil {
		return nil, invalidErr(err)
	}
	percents, err := amount.ParsePercents(req.Percents)
	if err != nil {
		return nil, invalidErr(err)
	}
	total, err := amount.Sum(amounts)
	if err != nil {
		return nil, invalidErr(err)
	}

	data, err := calldata.EncodeDisperseETH(to, amounts, percents)
	if err != nil {
		return nil, invalidErr(err)
	}

	hash, err := s.tx.send(ctx, models.KindDisperseETH, s.signer, s.tx.contract, data, total)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"recipients": len(to),
		"total":      total.String(),
		"tx_hash":    hash.Hex(),
	}).Info("disperse eth confirmed")
	return hexHashes([]common.Hash{hash}), nil
}

// DisperseERC20 approves the contract for every token before the single disperse call.
func (s *DisperseService) DisperseERC20(ctx context.Context, req models.DisperseErc20Request) ([]string, error) {
	if len(req.To) != len(req.Amounts) {
		return nil, invalid(lengthMismatch)
	}
	if s.signer == nil {
		return nil, ErrSignerNotConfigured
	}

	tokens, err := calldata.ParseAddresses(req.Tokens)
	if err != nil {
		return nil, invalidErr(err)
	}
	to, err := calldata.ParseAddresses(req.To)
	if err != nil {
		return nil, invalidErr(err)
	}
	amounts, err := amount.ParseUint256List(req.Amounts)
	if err != nil {
		return nil, invalidErr(err)
	}
	percents, err := amount.ParsePercents(req.Percents)
	if err != nil {
		return nil, invalidErr(err)
	}

	data, err := calldata.EncodeDisperseERC20(tokens, to, amounts, percents)
	if err != nil {
		return nil, invalidErr(err)
	}
	approve, err := calldata.EncodeApprove(s.tx.contract, amount.MaxUint256)
	if err != nil {
		return nil, err
	}

	for _, token := range tokens {
		hash, err := s.tx.send(ctx, models.KindApprove, s.signer, token, approve, nil)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"token":   token.Hex(),
			"tx_hash": hash.Hex(),
		}).Info("approve confirmed")
	}

	hash, err := s.tx.send(ctx, models.KindDisperseERC20, s.signer, s.tx.contract, data, nil)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tokens":     len(tokens),
		"recipients": len(to),
		"tx_hash":    hash.Hex(),
	}).Info("disperse erc20 confirmed")
	return hexHashes([]common.Hash{hash}), nil
}
