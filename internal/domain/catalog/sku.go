package catalog

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// SKUPrefix is the prefix for generated SKUs
const SKUPrefix = "JUDN"

var skuPattern = regexp.MustCompile(`^JUDN-[0-9]{6}-[0-9A-Z]{4}$`)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSKU generates a SKU from the trailing digits of the current
// millisecond timestamp plus a random suffix
func NewSKU() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	tail := millis[len(millis)-6:]

	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}

	return fmt.Sprintf("%s-%s-%s", SKUPrefix, tail, string(suffix))
}

// IsGeneratedSKU reports whether s matches the generated SKU format
func IsGeneratedSKU(s string) bool {
	return skuPattern.MatchString(s)
}
