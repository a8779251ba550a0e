package tool

import (
	"github.com/m-mizutani/goerr/v2"
)

// Error taxonomy for dispatch. Every one of these is caught at the dispatch
// boundary and rendered as plain text; nothing propagates to the protocol
// layer.
var (
	ErrUnknownTool     = goerr.New("unknown tool")
	ErrInvalidArgument = goerr.New("invalid argument")
	ErrDataUnavailable = goerr.New("data unavailable")
	ErrUpstream        = goerr.New("upstream failure")
)
