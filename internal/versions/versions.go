// Package versions reserves the crawled-versions mode of the CLI.
package versions

import (
	"context"
	"fmt"
)

// List would return the archived versions of a URL. The mode is accepted
// on the command line but has no defined output yet, so it returns an
// empty slice and callers emit nothing.
func List(ctx context.Context, target string) ([]string, error) {
	if target == "" {
		return nil, fmt.Errorf("versions: empty target")
	}
	// TODO: query the CDX index with collapse=digest and surface one
	// snapshot URL per distinct capture.
	return []string{}, nil
}
