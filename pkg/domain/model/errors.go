package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for domain operations
var (
	// ErrTagDataFormat marks a submission whose date cannot be parsed or whose
	// field is present with the wrong shape.
	ErrTagDataFormat = goerr.NewTag("data_format")
	// ErrTagTransport marks failures talking to an external system.
	ErrTagTransport = goerr.NewTag("transport")
	// ErrTagConfig marks invalid or incomplete configuration.
	ErrTagConfig = goerr.NewTag("config")
)

// Sentinel errors for domain operations
var (
	ErrRunInProgress = goerr.New("report run already in progress")
	ErrRunNotFound   = goerr.New("run not found")
)
