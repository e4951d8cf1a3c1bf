// Package amount parses the decimal strings used for token amounts into uint256 values.
package amount

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrInvalidNumber = errors.New("invalid decimal number")
	ErrOverflow      = errors.New("uint256 overflow")

	// MaxUint256 is 2^256 - 1.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// ParseUint256 accepts base 10 digits only. Signs, whitespace and prefixes are rejected.
func ParseUint256(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Wrap(ErrInvalidNumber, "empty string")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, errors.Wrapf(ErrInvalidNumber, "%q", s)
		}
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q", s)
	}
	if v.BitLen() > 256 {
		return nil, errors.Wrapf(ErrOverflow, "%q", s)
	}
	return v, nil
}

func ParseUint256List(ss []string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(ss))
	for _, s := range ss {
		v, err := ParseUint256(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParsePercents treats a missing value as zero.
func ParsePercents(s *string) (*big.Int, error) {
	if s == nil {
		return new(big.Int), nil
	}
	return ParseUint256(*s)
}

// Sum adds the values and fails once the total leaves the uint256 range.
func Sum(values []*big.Int) (*big.Int, error) {
	total := new(big.Int)
	for _, v := range values {
		total.Add(total, v)
		if total.BitLen() > 256 {
			return nil, ErrOverflow
		}
	}
	return total, nil
}
