package shortener

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// Alphabet is the 62-symbol alphabet short codes are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces short code candidates. Generation cannot fail and does
// not guarantee uniqueness; collisions are handled by the write path.
type Generator func() string

// NewUUIDGenerator returns a Generator that base62-encodes a random v4 UUID
// and truncates it to length symbols. Truncation discards most of the
// 128 bits of entropy (8 symbols keep roughly 47.6 bits), which makes
// accidental collisions rare but not impossible at scale.
func NewUUIDGenerator(length int) Generator {
	return func() string {
		id := uuid.New()

		n := new(big.Int).SetBytes(id[:])
		code := encodeBase62(n)

		if len(code) > length {
			code = code[:length]
		}

		return code
	}
}

// NewNanoIDGenerator returns a Generator backed by nanoid over the same
// base62 alphabet. Useful where uniform symbol distribution matters more
// than matching the UUID-derived scheme.
func NewNanoIDGenerator(length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return Generator(gen), nil
}

func encodeBase62(n *big.Int) string {
	if n.Sign() == 0 {
		return string(Alphabet[0])
	}

	base := big.NewInt(int64(len(Alphabet)))
	rem := new(big.Int)

	var buf []byte

	for n.Sign() > 0 {
		n.DivMod(n, base, rem)
		buf = append(buf, Alphabet[rem.Int64()])
	}

	// Digits come out least significant first
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}
