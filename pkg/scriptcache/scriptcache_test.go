package scriptcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/vm"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

func TestDecodeCachesByContent(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	script := []byte{byte(opcode.PUSH1), byte(opcode.PUSH2), byte(opcode.ADD), byte(opcode.RET)}

	instrs, err := c.Decode(script)
	require.NoError(t, err)
	require.Len(t, instrs, 4)
	require.Equal(t, 1, c.Len())

	instrs2, err := c.Decode(append([]byte(nil), script...))
	require.NoError(t, err)
	require.Equal(t, instrs, instrs2)
	require.Equal(t, 1, c.Len(), "an identical script by content, even a different slice, is one cache entry")
}

func TestDecodeRejectsMalformedScriptWithoutCaching(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	bad := []byte{byte(opcode.PUSHDATA1), 0x05} // length prefix claims 5 bytes, none follow

	_, err = c.Decode(bad)
	require.Error(t, err)
	require.Equal(t, 0, c.Len())
}

func TestLoadRunsThroughCacheAndEngine(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	e := vm.NewEngine(nil)
	script := []byte{byte(opcode.PUSH3), byte(opcode.PUSH4), byte(opcode.ADD), byte(opcode.RET)}

	_, err = Load(e, c, script, -1)
	require.NoError(t, err)
	require.Equal(t, vm.HALT, e.Execute())
	item, err := e.ResultStack().Pop()
	require.NoError(t, err)
	n, err := item.TryInteger()
	require.NoError(t, err)
	require.Equal(t, int64(7), n.Int64())
}
