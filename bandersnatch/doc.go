// Package bandersnatch implements [group.Group] over the Bandersnatch curve,
// the twisted Edwards curve defined over the BLS12-381 scalar field.
//
// The curve is
//
//	-5*x^2 + y^2 = 1 + d*x^2*y^2
//
// with a prime-order subgroup of size
//
//	13108968793781547619861935127046491459309155893440570251786403306729687672801
//
// and cofactor 4. Points travel as 32-byte compressed encodings (RFC 8032
// style: little-endian y, sign of x in the most significant bit). Scalars
// are 32-byte big-endian.
//
// Bandersnatch is the default group of the ring package.
package bandersnatch
