package stackitem

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePrimitives(t *testing.T) {
	require.Equal(t, NewBigInteger(big.NewInt(3)), Make(3))
	require.Equal(t, NewBigInteger(big.NewInt(3)), Make(int64(3)))
	require.Equal(t, Bool(true), Make(true))
	require.Equal(t, NewByteArray([]byte("abc")), Make("abc"))
	require.Equal(t, Null{}, Make(nil))
}

func TestBigIntegerEquals(t *testing.T) {
	a := NewBigInteger(big.NewInt(42))
	b := NewBigInteger(big.NewInt(42))
	c := NewBigInteger(big.NewInt(43))
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
	require.False(t, a.Equals(Null{}))
}

func TestByteArrayEquals(t *testing.T) {
	a := NewByteArray([]byte{1, 2, 3})
	b := NewByteArray([]byte{1, 2, 3})
	c := NewByteArray([]byte{1, 2, 4})
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
}

func TestArrayStructIdentity(t *testing.T) {
	arr := NewArray([]Item{Make(1), Make(2)})
	require.True(t, arr.Equals(arr))
	require.False(t, arr.Equals(NewArray([]Item{Make(1), Make(2)})))
}

func TestStructDeepEquals(t *testing.T) {
	a := NewStruct([]Item{Make(1), NewByteArray([]byte("x"))})
	b := NewStruct([]Item{Make(1), NewByteArray([]byte("x"))})
	c := NewStruct([]Item{Make(1), NewByteArray([]byte("y"))})
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
}

func TestStructClone(t *testing.T) {
	inner := NewStruct([]Item{Make(1)})
	outer := NewStruct([]Item{inner, NewArray([]Item{Make(2)})})
	clone, err := outer.Clone()
	require.NoError(t, err)
	require.True(t, outer.Equals(clone))

	clonedInner := clone.value[0].(*Struct)
	clonedInner.Append(Make(99))
	require.Equal(t, 1, inner.Len())

	clonedArr := clone.value[1].(*Array)
	clonedArr.Append(Make(100))
	require.Equal(t, 2, outer.value[1].(*Array).Len())
}

func TestConvert(t *testing.T) {
	arr := NewArray([]Item{Make(1)})
	s, err := arr.Convert(StructT)
	require.NoError(t, err)
	require.IsType(t, &Struct{}, s)

	b, err := Make(5).Convert(BooleanT)
	require.NoError(t, err)
	require.Equal(t, Bool(true), b)

	_, err = arr.Convert(IntegerT)
	require.ErrorIs(t, err, ErrInvalidConversion)
}

func TestMapAddHasDrop(t *testing.T) {
	m := NewMap()
	m.Add(Make("k1"), Make(1))
	m.Add(Make("k2"), Make(2))
	require.True(t, m.Has(Make("k1")))
	require.False(t, m.Has(Make("k3")))
	require.Equal(t, 2, m.Len())
	m.Drop(m.Index(Make("k1")))
	require.False(t, m.Has(Make("k1")))
	require.Equal(t, 1, m.Len())
}

func TestIsValidMapKey(t *testing.T) {
	require.NoError(t, IsValidMapKey(Make(1)))
	require.NoError(t, IsValidMapKey(Make(true)))
	require.NoError(t, IsValidMapKey(NewByteArray([]byte("k"))))
	require.Error(t, IsValidMapKey(NewArray(nil)))
}

func TestPointerEquals(t *testing.T) {
	script := []byte{0x01, 0x02, 0x03}
	p1 := NewPointer(4, script)
	p2 := NewPointer(4, script)
	p3 := NewPointer(5, script)
	require.True(t, p1.Equals(p2))
	require.False(t, p1.Equals(p3))
}

func TestStructCloneIsIndependentOfOriginal(t *testing.T) {
	inner := NewStruct([]Item{Make(2)})
	nested := NewArray([]Item{Make(9)})
	s := NewStruct([]Item{Make(1), inner, nested})
	cp, err := s.Clone()
	require.NoError(t, err)

	cp.Append(Make(3))
	require.Equal(t, 3, s.Len())
	require.Equal(t, 4, cp.Len())

	// A nested Struct is deep-cloned...
	innerClone := cp.Value().([]Item)[1].(*Struct)
	require.NotSame(t, inner, innerClone)
	// ...but an Array field is copied by reference.
	arrClone := cp.Value().([]Item)[2].(*Array)
	require.Same(t, nested, arrClone)
}

func TestStructCloneRejectsOversizedStruct(t *testing.T) {
	items := make([]Item, MaxClonableNumOfItems+1)
	for i := range items {
		items[i] = Make(i)
	}
	s := NewStruct(items)
	_, err := s.Clone()
	require.ErrorIs(t, err, ErrTooBig)
}

func TestByteArrayTooBigForInteger(t *testing.T) {
	oversized := NewByteArray(make([]byte, MaxBigIntegerSizeBits/8+1))
	_, err := oversized.TryInteger()
	require.ErrorIs(t, err, ErrTooBig)

	b, err := oversized.TryBool()
	require.NoError(t, err)
	require.True(t, b, "a byte string longer than the integer bound is true without a byte scan")

	_, err = NewBuffer(make([]byte, MaxBigIntegerSizeBits/8+1)).Convert(IntegerT)
	require.ErrorIs(t, err, ErrTooBig)
}

func TestCheckIntegerSizeOverflow(t *testing.T) {
	big1 := new(big.Int).Lsh(big.NewInt(1), MaxBigIntegerSizeBits)
	require.Panics(t, func() { NewBigInteger(big1) })
}
