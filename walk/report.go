package walk

import (
	"context"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/cachebust/types"
)

// ReportTo returns a Reporter that logs each failure under logPrefix and
// appends it to report.
func ReportTo(report *types.Report, logPrefix string) Reporter {
	logger := log.WithFunc(logPrefix)
	return func(ctx context.Context, path string, err error) {
		logger.Errorf(ctx, err, "skip %s", path)
		report.Fail(path, err)
	}
}
