package ser

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// --- Serializer Test Suite ---

type SerializerTestSuite struct {
	suite.Suite
	s          *Serializer
	boundaries []int // running totals after each value of s
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *SerializerTestSuite) SetupTest() {
	s.s = Serialize(
		Scalar(uint8(0xAB)),        // 1
		Scalar(uint32(0x01020304)), // 4
		Array[uint16](1, 2, 3),     // 6
		CString("hi"),              // 3
		Scalar(uint64(0xFFEEDDCC)), // 8
	)
	s.boundaries = []int{0, 1, 5, 11, 14, 22}
}

// expected re-derives the encoding value by value, independent of To.
func (s *SerializerTestSuite) expected() []byte {
	var out []byte
	for _, v := range s.s.Values() {
		out = append(out, encode(v)...)
	}
	return out
}

func (s *SerializerTestSuite) TestMixedValues() {
	mixed := Serialize(Scalar(uint8(0xAB)), Scalar(uint32(1)))
	s.Require().Equal(5, mixed.Size())

	buf := make([]byte, 5)
	s.Assert().Equal(5, mixed.To(buf))
	s.Assert().Equal([]byte{0xAB, 0x01, 0x00, 0x00, 0x00}, buf)
}

func (s *SerializerTestSuite) TestSizeWriteAgreement() {
	s.Require().Equal(22, s.s.Size())
	s.Assert().Equal(5, s.s.Len())

	for _, extra := range []int{0, 1, 64} {
		buf := bytes.Repeat([]byte{0xEE}, s.s.Size()+extra)
		n := s.s.To(buf)
		s.Assert().Equal(s.s.Size(), n)
		s.Assert().Equal(s.expected(), buf[:n])
		// Bytes past Size are untouched.
		s.Assert().Equal(bytes.Repeat([]byte{0xEE}, extra), buf[n:])
	}

	s.Assert().Equal([]byte{
		0xAB,
		0x04, 0x03, 0x02, 0x01,
		0x01, 0x00, 0x02, 0x00, 0x03, 0x00,
		'h', 'i', 0x00,
		0xCC, 0xDD, 0xEE, 0xFF, 0x00, 0x00, 0x00, 0x00,
	}, s.expected())
}

func (s *SerializerTestSuite) TestTruncationOnValueBoundaries() {
	full := s.expected()
	for c := 0; c < s.s.Size(); c++ {
		buf := bytes.Repeat([]byte{0xEE}, c)
		n := s.s.To(buf)

		// The largest boundary that fits in c.
		want := 0
		for _, b := range s.boundaries {
			if b <= c {
				want = b
			}
		}
		s.Assert().Equal(want, n, "capacity %d", c)
		s.Assert().Equal(full[:n], buf[:n], "capacity %d", c)
		s.Assert().Equal(bytes.Repeat([]byte{0xEE}, c-n), buf[n:], "capacity %d wrote a partial value", c)
	}
}

func (s *SerializerTestSuite) TestZeroCapacity() {
	s.Assert().Zero(s.s.To(nil))
	s.Assert().Zero(s.s.To([]byte{}))

	buf := make([]byte, 8)
	s.Assert().Zero(s.s.To(buf[:0]))
	s.Assert().Equal(make([]byte, 8), buf)
}

func (s *SerializerTestSuite) TestOrderPreservation() {
	a, b, c := Scalar(uint16(0x0102)), Array[uint8](7, 8, 9), Scalar(int32(-1))

	abc := Serialize(a, b, c)
	cab := Serialize(c, a, b)
	s.Require().Equal(abc.Size(), cab.Size())

	got := make([]byte, cab.Size())
	cab.To(got)
	want := append(append(encode(c), encode(a)...), encode(b)...)
	s.Assert().Equal(want, got)

	got = make([]byte, abc.Size())
	abc.To(got)
	want = append(append(encode(a), encode(b)...), encode(c)...)
	s.Assert().Equal(want, got)
}

func (s *SerializerTestSuite) TestFixedArrayBuffer() {
	var buf [32]byte
	n := s.s.To(buf[:])
	s.Assert().Equal(22, n)
	s.Assert().Equal(s.expected(), buf[:n])
}

func (s *SerializerTestSuite) TestRepeatable() {
	first, second := make([]byte, s.s.Size()), make([]byte, s.s.Size())
	s.s.To(first)
	s.s.To(second)
	s.Assert().Equal(first, second)
}

func (s *SerializerTestSuite) TestMarshalTo() {
	s.T().Run("Fits", func(t *testing.T) {
		buf := make([]byte, s.s.Size())
		n, err := s.s.MarshalTo(buf)
		require.NoError(t, err)
		assert.Equal(t, s.s.Size(), n)
	})

	s.T().Run("ShortBuffer", func(t *testing.T) {
		buf := make([]byte, 12)
		n, err := s.s.MarshalTo(buf)
		assert.ErrorIs(t, err, io.ErrShortBuffer)
		assert.Equal(t, 11, n)
		assert.Equal(t, s.s.To(make([]byte, 12)), n)
	})
}

func (s *SerializerTestSuite) TestMarshalBinary() {
	data, err := s.s.MarshalBinary()
	s.Require().NoError(err)
	s.Assert().Equal(s.expected(), data)
}

func (s *SerializerTestSuite) TestWriteTo() {
	var buf bytes.Buffer
	n, err := s.s.WriteTo(&buf)
	s.Require().NoError(err)
	s.Assert().EqualValues(s.s.Size(), n)
	s.Assert().Equal(s.expected(), buf.Bytes())

	_, err = s.s.WriteTo(nil)
	s.Assert().ErrorIs(err, ErrNilIO)
}

func (s *SerializerTestSuite) TestWriteToBytesWriterWholeValues() {
	dst := bytes.Repeat([]byte{0xEE}, 12)
	n, err := s.s.WriteTo(NewBytesWriter(dst))
	s.Assert().ErrorIs(err, io.ErrShortWrite)
	s.Assert().EqualValues(11, n)
	s.Assert().EqualValues(s.s.To(make([]byte, 12)), n)
	s.Assert().Equal(s.expected()[:11], dst[:11])
	s.Assert().Equal(byte(0xEE), dst[11], "no part of the byte string was written")
}

func (s *SerializerTestSuite) TestValuesIsACopy() {
	values := s.s.Values()
	values[0] = Scalar(uint64(0))
	s.Assert().Equal(22, s.s.Size())
	s.Assert().Equal(uint8(0xAB), s.s.Values()[0].(scalar[uint8]).v)
}

func (s *SerializerTestSuite) TestNilValuePanics() {
	requirePanicErrorIs(s.T(), ErrUnsupportedType, func() { Serialize(Scalar(uint8(1)), nil) })
}

func (s *SerializerTestSuite) TestConcurrentUse() {
	want := s.expected()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, s.s.Size())
			assert.Equal(s.T(), s.s.Size(), s.s.To(buf))
			assert.Equal(s.T(), want, buf)
		}()
	}
	wg.Wait()
}

// TestSerializer runs the SerializerTestSuite.
func TestSerializer(t *testing.T) {
	suite.Run(t, new(SerializerTestSuite))
}

// --- Standalone Serializer Tests ---

func TestSerializeAny(t *testing.T) {
	s := SerializeAny(uint8(0xAB), uint32(1), [2]uint16{5, 6}, "ok", green, Scalar(int8(-1)))
	assert.Equal(t, 1+4+4+3+1+1, s.Size())
	assert.False(t, s.Static())

	buf := make([]byte, s.Size())
	require.Equal(t, s.Size(), s.To(buf))
	assert.Equal(t, []byte{
		0xAB,
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x00, 0x06, 0x00,
		'o', 'k', 0x00,
		0x02,
		0xFF,
	}, buf)
}

func TestSerializer_LogsTruncation(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	s := Serialize(Scalar(uint8(1)), Scalar(uint32(2)))
	require.Equal(t, 1, s.To(make([]byte, 3)))

	entries := logs.FilterMessage("serializer truncated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["index"])
	assert.EqualValues(t, 4, fields["need"])
	assert.EqualValues(t, 2, fields["available"])
	assert.EqualValues(t, 1, fields["written"])

	// A full write logs nothing.
	s.To(make([]byte, s.Size()))
	assert.Equal(t, 1, logs.FilterMessage("serializer truncated").Len())
}
