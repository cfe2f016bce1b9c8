package pathcodec

// Encode returns the safe alphabet encoding of points. An empty slice encodes to an empty result.
func Encode(points []Point) []byte {
	return AppendEncode(make([]byte, 0, len(points)*4), points)
}

func EncodeToString(points []Point) string {
	return string(Encode(points))
}

// AppendEncode appends the encoding of points to dst and returns the extended buffer.
func AppendEncode(dst []byte, points []Point) []byte {
	var latitude, longitude int64

	for _, p := range points {
		newLatitude := quantize(p.Lat)
		newLongitude := quantize(p.Long)

		dy := newLatitude - latitude
		dx := newLongitude - longitude
		latitude = newLatitude
		longitude = newLongitude

		index := pair(zigzag(dy), zigzag(dx))

		// index 0 (same point as the previous one) writes nothing.
		for index > 0 {
			rem := byte(index & digitMask)
			index >>= digitBits
			if index > 0 {
				rem += continuationBit
			}
			dst = append(dst, safeCharacters[rem])
		}
	}

	return dst
}

func zigzag(d int64) uint64 {
	return uint64((d << 1) ^ (d >> 63))
}

// pair. cantor pairing function, diagonal s = zy+zx then zy inside the diagonal.
func pair(zy, zx uint64) uint64 {
	s := zy + zx
	return triangle(s) + zy
}

// triangle returns s(s+1)/2 without overflowing the intermediate product.
func triangle(s uint64) uint64 {
	if s%2 == 0 {
		return (s / 2) * (s + 1)
	}
	return s * ((s + 1) / 2)
}
