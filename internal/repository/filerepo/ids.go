package filerepo

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newID генерирует идентификатор вида PREFIX-<unix ms>-<hex>.
func newID(prefix string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b))
}
