package vault

import (
	"bytes"
	"fmt"
	"math/big"
)

// Uint128 is an unsigned 128-bit integer encoded in JSON as a bare number
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// IsZero reports whether u is 0
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

func (u Uint128) big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return u.big().String()
}

// MarshalJSON implements json.Marshaler
func (u Uint128) MarshalJSON() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. Only non-negative integer
// literals up to 2^128-1 are accepted.
func (u *Uint128) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] < '0' || data[0] > '9' {
		return fmt.Errorf("invalid u128 value %s", data)
	}
	b, ok := new(big.Int).SetString(string(data), 10)
	if !ok {
		return fmt.Errorf("invalid u128 value %s", data)
	}
	if b.BitLen() > 128 {
		return fmt.Errorf("u128 value %s out of range", data)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	u.Lo = new(big.Int).And(b, mask).Uint64()
	u.Hi = new(big.Int).Rsh(b, 64).Uint64()
	return nil
}
