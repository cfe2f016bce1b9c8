package pathcodec

import (
	"math"
)

const (
	// maxGroupBits is the widest digit group accepted, pairing values are kept within int64.
	maxGroupBits = 63
)

// Decode parses data produced by Encode. A malformed input never yields a partial result.
func Decode(data []byte) ([]Point, error) {
	points := make([]Point, 0, len(data)/4)

	var (
		xsum, ysum int64
		index      int
	)

	for index < len(data) {
		n, next, err := readGroup(data, index)
		if err != nil {
			return nil, err
		}
		index = next

		zy, zx := unpair(n)
		ysum += unzigzag(zy)
		xsum += unzigzag(zx)

		points = append(points, NewPoint(dequantize(ysum), dequantize(xsum)))
	}

	return points, nil
}

func DecodeString(s string) ([]Point, error) {
	return Decode([]byte(s))
}

// readGroup reads one digit group starting at data[start], returns the combined value and the offset after the group.
func readGroup(data []byte, start int) (uint64, int, error) {
	var (
		n uint64
		k uint
	)

	index := start
	for {
		if index >= len(data) {
			return 0, 0, &DecodeError{Offset: start, Err: ErrTruncated}
		}

		c := data[index]
		b, ok := IndexOf(c)
		if !ok {
			return 0, 0, &DecodeError{Offset: index, Char: c, Err: ErrInvalidCharacter}
		}

		digit := uint64(b & digitMask)
		if k >= maxGroupBits || (digit != 0 && digit>>(maxGroupBits-k) != 0) {
			return 0, 0, &DecodeError{Offset: start, Err: ErrOverflow}
		}
		n |= digit << k
		k += digitBits
		index++

		if b < continuationBit {
			return n, index, nil
		}
	}
}

// unpair inverts pair. the diagonal is estimated with a float square root and then
// corrected so that triangle(s) <= n < triangle(s+1) holds exactly.
func unpair(n uint64) (uint64, uint64) {
	s := uint64((math.Sqrt(8*float64(n)+1) - 1) / 2)
	for s > 0 && triangle(s) > n {
		s--
	}
	for triangle(s+1) <= n {
		s++
	}

	zy := n - triangle(s)
	zx := s - zy
	return zy, zx
}

func unzigzag(z uint64) int64 {
	return int64(z>>1) ^ -int64(z&1)
}
