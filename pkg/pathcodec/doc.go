/*
Package pathcodec compresses an ordered list of latitude/longitude points into a
short string that can be put in a url path or query parameter without escaping.

Every coordinate is quantized to 5 decimal places. Consecutive points are delta
encoded, the signed deltas are zigzag encoded and the two axes are interleaved into
one integer with the cantor pairing function. That integer is written as little
endian base-32 digits, bit 5 of every digit except the last one is the continuation
flag, and each 6-bit digit is mapped to one byte of the safe alphabet
(A-Z a-z 0-9 _ -).

	s := pathcodec.EncodeToString([]pathcodec.Point{
		pathcodec.NewPoint(35.894309, -110.725220),
		pathcodec.NewPoint(35.893931, -110.725780),
	})
	points, err := pathcodec.DecodeString(s)

Encode and Decode are pure functions and can be called from many goroutines.
*/
package pathcodec
