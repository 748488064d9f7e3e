package xid

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	fragmentSize = 13
)

// Generator produces entity identifiers.
type Generator func() string

// New returns a random base-36 fragment followed by the base-36 millisecond
// timestamp. Ids are opaque and are not checked against existing records.
func New() string {
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var b strings.Builder
	b.Grow(fragmentSize + len(stamp))
	limit := big.NewInt(int64(len(alphabet)))
	for i := 0; i < fragmentSize; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return strconv.FormatInt(time.Now().UnixNano(), 36) + stamp
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	b.WriteString(stamp)
	return b.String()
}

// Sequence returns a deterministic generator ("prefix-1", "prefix-2", ...).
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
