package vm

import (
	"math/big"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func bigFromInt64(n int64) *big.Int {
	return big.NewInt(n)
}

// checkBigInteger enforces MaxSizeForBigInteger the same way
// stackitem.CheckIntegerSize does, but against this engine's
// (possibly virtualized) limit rather than a fixed constant.
func (e *Engine) checkBigInteger(v *big.Int) error {
	maxBits := e.limits.MaxSizeForBigInteger * 8
	sz := v.BitLen()
	if sz < maxBits {
		return nil
	}
	if sz > maxBits {
		return errBigIntegerTooBig
	}
	if v.Sign() == 1 || int(v.TrailingZeroBits()) != maxBits-1 {
		return errBigIntegerTooBig
	}
	return nil
}

// popBigInt pops the top item and requires it convert to an integer
// within MaxSizeForBigInteger.
func (e *Engine) popBigInt(ctx *Context) (*big.Int, error) {
	item, err := e.pop(ctx)
	if err != nil {
		return nil, err
	}
	v, err := item.TryInteger()
	if err != nil {
		return nil, err
	}
	if err := e.checkBigInteger(v); err != nil {
		return nil, err
	}
	return v, nil
}

// pushBigInt validates and pushes an arithmetic result.
func (e *Engine) pushBigInt(ctx *Context, v *big.Int) error {
	if err := e.checkBigInteger(v); err != nil {
		return err
	}
	e.push(ctx, stackitem.NewBigInteger(v))
	return nil
}

// popBool pops the top item and converts it to a boolean.
func (e *Engine) popBool(ctx *Context) (bool, error) {
	item, err := e.pop(ctx)
	if err != nil {
		return false, err
	}
	return item.TryBool()
}

// pushBool pushes a boolean result.
func (e *Engine) pushBool(ctx *Context, b bool) {
	e.push(ctx, stackitem.NewBool(b))
}

// popIndex pops the top item, requires a non-negative integer that fits
// an int, and returns it.
func (e *Engine) popIndex(ctx *Context) (int, error) {
	v, err := e.popBigInt(ctx)
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || !v.IsInt64() {
		return 0, errIndexOutOfRange
	}
	n := v.Int64()
	if n > int64(^uint(0)>>1) {
		return 0, errIndexOutOfRange
	}
	return int(n), nil
}
