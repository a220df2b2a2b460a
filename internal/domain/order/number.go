package order

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OrderNumberPrefix is the public prefix on every order number
const OrderNumberPrefix = "JUDN"

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var orderNumberPattern = regexp.MustCompile(`^JUDN-[0-9A-Z]+-[0-9A-Z]{5}$`)

// NewOrderNumber generates a human-readable order identifier of the form
// JUDN-<millis in base36>-<5 random base36 chars>, uppercased. It is
// generated exactly once per order and immutable thereafter.
func NewOrderNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(OrderNumberPrefix + "-" + ts + "-" + randomBase36(5))
}

// IsOrderNumber reports whether s looks like a generated order number
func IsOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}

func randomBase36(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing is unrecoverable for id generation
			panic(err)
		}
		b[i] = base36Alphabet[idx.Int64()]
	}
	return string(b)
}
