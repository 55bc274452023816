package ingest

import (
	"context"

	"github.com/Spirent/openperf-sub000/model"
	"github.com/Spirent/openperf-sub000/tdigest"
	"github.com/Spirent/openperf-sub000/utils"
	"github.com/hyp3rd/ewrap"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Sink consumes one digest per (result, tag) pair.
type Sink interface {
	Plot(ctx context.Context, record model.DigestRecord, digest *tdigest.Digest) error
}

// Process builds a digest for every recognized tag of every record and hands
// it to the sink. A failing record does not stop the others; all failures are
// returned together.
func Process(ctx context.Context, records []Record, sink Sink) error {
	logger := utils.GetLogger(ctx)

	var errs error
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		digestRecords, err := Extract(record)
		if err != nil {
			logger.Error("skip malformed result", zap.String("result_id", record.ResultID()), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		if len(digestRecords) == 0 {
			logger.Info("result has no digests", zap.String("result_id", record.ResultID()))
		}

		for _, digestRecord := range digestRecords {
			if err := handle(ctx, digestRecord, sink); err != nil {
				logger.Error("digest failed", zap.String("result_id", digestRecord.ResultID),
					zap.String("tag", string(digestRecord.Tag)), zap.Error(err))
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

func handle(ctx context.Context, record model.DigestRecord, sink Sink) error {
	digest, err := tdigest.NewDigest(record.Centroids, record.Summary.Min, record.Summary.Max)
	if err != nil {
		return ewrap.Wrapf(err, "result %s: %s", record.ResultID, record.Tag)
	}
	return sink.Plot(ctx, record, digest)
}
