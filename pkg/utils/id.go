package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	// Counter for sequential fallback IDs
	idCounter uint64
)

// GenerateID generates a unique ID from a timestamp and an atomic counter
func GenerateID() string {
	count := atomic.AddUint64(&idCounter, 1)
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("%x-%x", timestamp, count)
}

// GenerateAnalysisID generates an analysis ID with a timestamp prefix
func GenerateAnalysisID() string {
	timestamp := time.Now().Format("20060102-150405")
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if err != nil {
		count := atomic.AddUint64(&idCounter, 1)
		return fmt.Sprintf("an-%s-%x", timestamp, count)
	}
	return fmt.Sprintf("an-%s-%s", timestamp, hex.EncodeToString(b))
}
