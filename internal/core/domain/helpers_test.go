package domain

import (
	"crypto/md5" //nolint:gosec // test helper
	"encoding/hex"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec // test helper
	return hex.EncodeToString(sum[:])
}
