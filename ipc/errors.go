package ipc

import "github.com/coldex-io/coldex/errs"

func errCorruptZeroBitmapWithNulls(nullCount int64) error {
	return errs.CorruptStream("zero-length validity buffer but null_count=%d", nullCount)
}
