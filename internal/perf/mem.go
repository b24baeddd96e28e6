package perf

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ReadVMPeak returns peak virtual memory of the process in bytes.
//
// Returns 0 where /proc is not available.
func ReadVMPeak() int {
	fo, err := os.Open("/proc/self/status")
	if err != nil {
		slog.Debug("Failed to read /proc/self/status.", "err", err)
		return 0
	}
	defer fo.Close() //nolint:errcheck

	return parseStatus(fo, "VmPeak:")
}

// parseStatus reads a kB field from proc status format.
func parseStatus(r io.Reader, prefix string) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			slog.Debug("Malformed status line.", "line", line)
			return 0
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil {
			slog.Debug("Failed to parse status value.", "field", prefix, "err", err)
			return 0
		}
		return value * 1024
	}

	if err := scanner.Err(); err != nil {
		slog.Debug("Failed to read from file.", "err", err)
	}

	return 0
}

func FormatBytes(value int) string {
	const divisor = 1024.
	const step = 512.
	units := []string{"B", "KiB", "MiB", "GiB"}

	unitIndex := 0
	var f float64
	for f = float64(value); f > step && unitIndex < len(units)-1; f /= divisor {
		unitIndex++
	}
	return strings.Replace(fmt.Sprintf("%.1f%s", f, units[unitIndex]), ".0", "", 1)
}
