package command

import (
	"strconv"
	"strings"
	"time"
)

func parseExpiryMode(raw []byte) ExpiryMode {
	switch strings.ToUpper(string(raw)) {
	case "EX":
		return ExpiryEX
	case "PX":
		return ExpiryPX
	case "EXAT":
		return ExpiryEXAT
	case "PXAT":
		return ExpiryPXAT
	default:
		return ExpiryNone
	}
}

// expiryDeadline converts a SET expiry mode/value pair into an absolute
// deadline. EX/PX are relative to now; EXAT/PXAT are already absolute.
func expiryDeadline(mode ExpiryMode, value int64) (time.Time, bool) {
	switch mode {
	case ExpiryEX:
		return time.Now().Add(time.Duration(value) * time.Second), true
	case ExpiryPX:
		return time.Now().Add(time.Duration(value) * time.Millisecond), true
	case ExpiryEXAT:
		return time.Unix(value, 0), true
	case ExpiryPXAT:
		return time.UnixMilli(value), true
	default:
		return time.Time{}, false
	}
}

func parseInt64(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

func formatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}
