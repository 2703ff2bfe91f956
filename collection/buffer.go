package collection

// Buffer size tiers, keyed by file size. Small files read through a small
// buffer, anything beyond a few megabytes caps at 64KiB.
const (
	minBufferSize = 4 << 10
	maxBufferSize = 64 << 10
)

func bufferSize(fileSize int64) int {
	switch {
	case fileSize < 64<<10:
		return minBufferSize
	case fileSize < 1<<20:
		return 16 << 10
	case fileSize < 8<<20:
		return 32 << 10
	default:
		return maxBufferSize
	}
}
