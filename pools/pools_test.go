package pools

import "testing"

func TestGetStringSliceIsResetAndReused(t *testing.T) {
	s := Pools.GetStringSlice()
	s = append(s, "a", "b")
	Pools.ReturnStringSlice(s)

	s2 := Pools.GetStringSlice()
	if len(s2) != 0 {
		t.Errorf("len(s2) = %d, want 0", len(s2))
	}
}

func TestGetBuilderIsReset(t *testing.T) {
	b := Pools.GetBuilder()
	b.WriteString("leftover")
	Pools.ReturnBuilder(b)

	b2 := Pools.GetBuilder()
	if b2.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b2.Len())
	}
}

func TestGetByteBufferIsReset(t *testing.T) {
	buf := Pools.GetByteBuffer()
	buf.WriteString("leftover")
	Pools.ReturnByteBuffer(buf)

	buf2 := Pools.GetByteBuffer()
	if buf2.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf2.Len())
	}
}

func TestReset(t *testing.T) {
	Pools.Reset()
	s := Pools.GetStringSlice()
	if len(s) != 0 || cap(s) == 0 {
		t.Errorf("fresh slice from a reset pool should still have default capacity, got len=%d cap=%d", len(s), cap(s))
	}
}
