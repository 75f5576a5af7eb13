/*
Package checksum implements the additive checksum found at the end of every
SRF file.

A finished file is padded with 0xFF bytes until it is one byte short of a
multiple of 256 and then closed with a single check byte chosen so that the
byte sum of the whole file is zero modulo 256. There is no polynomial; the
sum is plain unsigned addition.
*/
package checksum

// Digest accumulates the running byte sum of everything written to it. It
// implements io.Writer so it can sit behind an io.MultiWriter while a file
// is being produced.
type Digest struct {
	sum uint8
}

// New creates a new Digest with a zero sum.
func New() *Digest {
	return new(Digest)
}

func (d *Digest) Size() int { return 1 }

func (d *Digest) BlockSize() int { return 1 }

func (d *Digest) Reset() { d.sum = 0 }

func (d *Digest) Write(p []byte) (n int, err error) {
	d.sum = Update(d.sum, p)
	return len(p), nil
}

// Sum8 returns the byte sum so far, modulo 256.
func (d *Digest) Sum8() uint8 { return d.sum }

// CheckByte returns the value that, appended to everything written so far,
// brings the byte sum to zero modulo 256.
func (d *Digest) CheckByte() uint8 { return -d.sum }

// Update returns the result of adding the bytes in p to sum.
func Update(sum uint8, p []byte) uint8 {
	for i := range p {
		sum += p[i]
	}
	return sum
}

// Checksum returns the byte sum of data modulo 256.
func Checksum(data []byte) uint8 { return Update(0, data) }

// Valid reports whether data carries a correct trailer: the length is a
// multiple of 256 and the bytes sum to zero modulo 256.
func Valid(data []byte) bool {
	return len(data) > 0 && len(data)%256 == 0 && Checksum(data) == 0
}
