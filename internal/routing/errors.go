package routing

import "errors"

// ErrNoRoute indicates no routing decision could be made for a document:
// either no rule or default mapping applied, or no active worker was
// available. It is distinct from store failures, which are returned
// wrapped; callers should leave the document in its pre-routed state.
var ErrNoRoute = errors.New("no route for document")
