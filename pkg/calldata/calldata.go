// Package calldata encodes the fixed contract calls the service sends.
package calldata

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var ErrInvalidAddress = errors.New("invalid address")

const (
	payable    = "payable"
	nonpayable = "nonpayable"
)

var (
	addressT      = mustType("address")
	addressSliceT = mustType("address[]")
	uint256T      = mustType("uint256")
	uint256SliceT = mustType("uint256[]")
)

var (
	DisperseETH = newMethod("disperseETH", payable,
		arg("to", addressSliceT), arg("amounts", uint256SliceT), arg("percents", uint256T))

	DisperseERC20 = newMethod("disperseERC20", nonpayable,
		arg("tokens", addressSliceT), arg("to", addressSliceT), arg("amounts", uint256SliceT), arg("percents", uint256T))

	CollectETH = newMethod("collectETH", payable,
		arg("amount", uint256T), arg("percents", uint256T))

	// The contract overloads collectETH for the token path.
	CollectERC20 = newMethod("collectETH", payable,
		arg("token", addressT), arg("amount", uint256T), arg("percents", uint256T))

	Approve = newMethod("approve", nonpayable,
		arg("spender", addressT), arg("value", uint256T))
)

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

func arg(name string, t abi.Type) abi.Argument {
	return abi.Argument{Name: name, Type: t}
}

func newMethod(name, mutability string, inputs ...abi.Argument) abi.Method {
	return abi.NewMethod(name, name, abi.Function, mutability, false, mutability == payable, inputs, nil)
}

func pack(m abi.Method, args ...interface{}) ([]byte, error) {
	params, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, errors.Wrapf(err, "pack %s", m.Sig)
	}
	data := make([]byte, 0, len(m.ID)+len(params))
	data = append(data, m.ID...)
	return append(data, params...), nil
}

// ParseAddress accepts a 20 byte hex address with or without the 0x prefix.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "%q", s)
	}
	return common.HexToAddress(s), nil
}

func ParseAddresses(ss []string) ([]common.Address, error) {
	out := make([]common.Address, 0, len(ss))
	for _, s := range ss {
		addr, err := ParseAddress(s)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

func EncodeDisperseETH(to []common.Address, amounts []*big.Int, percents *big.Int) ([]byte, error) {
	return pack(DisperseETH, to, amounts, percents)
}

func EncodeDisperseERC20(tokens, to []common.Address, amounts []*big.Int, percents *big.Int) ([]byte, error) {
	return pack(DisperseERC20, tokens, to, amounts, percents)
}

func EncodeCollectETH(amount, percents *big.Int) ([]byte, error) {
	return pack(CollectETH, amount, percents)
}

func EncodeCollectERC20(token common.Address, amount, percents *big.Int) ([]byte, error) {
	return pack(CollectERC20, token, amount, percents)
}

func EncodeApprove(spender common.Address, value *big.Int) ([]byte, error) {
	return pack(Approve, spender, value)
}
