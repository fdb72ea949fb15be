package cliprompt

import "errors"

// ErrPoolExhausted is returned by Pool.Acquire when every instance in the
// pool is already checked out. The embedder's only recourse is to reject
// that one session; it must never affect sessions already in progress.
var ErrPoolExhausted = errors.New("cliprompt: pool exhausted")

// ErrArgvOverflow names the condition of a submitted line tokenizing into
// more arguments than Config.MaxArgs allows. It is not returned by any
// function: dispatch writes its message to the byte sink as a diagnostic
// and does not invoke the matched handler.
var ErrArgvOverflow = errors.New("cliprompt: too many arguments")
