package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateNanoIDWithPrefix returns a prefixed nanoid, e.g. "email_x7k...".
func GenerateNanoIDWithPrefix(prefix string, length int) string {
	id, err := gonanoid.Generate(idAlphabet, length)
	if err != nil {
		// gonanoid only errors on bad alphabet/length arguments
		panic(fmt.Sprintf("nanoid generation failed: %v", err))
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}

func Now() time.Time {
	return time.Now().UTC()
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return Now().UnixMilli()
}

// StartOfToday returns local midnight of the current day as epoch milliseconds.
func StartOfToday() int64 {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.UnixMilli()
}
