package arrowarray

import "github.com/coldex-io/coldex/errs"

var errDenseOffsetsMismatch = errs.OutOfSpec("dense union offsets length must equal row count")
