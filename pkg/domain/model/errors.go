package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for chart operations. Tags only affect logging; callers see a
// single error kind.
var (
	ErrTagInvalidRequest   = goerr.NewTag("invalid_request")
	ErrTagInvalidDate      = goerr.NewTag("invalid_date")
	ErrTagConversionFailed = goerr.NewTag("conversion_failed")
)
