// Package httputil provides retry helpers for HTTP clients.
//
// [Retry] re-runs an operation with exponential backoff while it fails with a
// [RetryableError]. Clients wrap transient failures (network errors, 5xx
// responses) in RetryableError and return everything else unwrapped, so a 404
// or a rate limit fails immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Cancelling ctx stops the wait between attempts.
package httputil
