// Package results appends benchmark records to the shared results log.
package results

import (
	"fmt"
	"os"
)

// Append writes one run record to the log at path, creating the file on
// first use. Fields: mode, road length, iterations, worker count, elapsed
// seconds.
func Append(path, mode string, n, iterations, workers int, elapsed float64) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results log: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s,%d,%d,%d,%.9f\n", mode, n, iterations, workers, elapsed); err != nil {
		return fmt.Errorf("append results log: %w", err)
	}
	return nil
}
