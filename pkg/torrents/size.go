package torrents

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count in the largest unit that keeps the
// value above one, with two decimal places. Zero or negative input
// renders as "0 Byte".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Byte"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/math.Pow(1024, float64(i)), sizeUnits[i])
}
