package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/clevacompass/pkg/httputil"
)

func ExampleRetry() {
	attempt := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempt++
		if attempt < 3 {
			return &httputil.RetryableError{Err: errors.New("502 bad gateway")}
		}
		return nil
	})
	fmt.Println("attempts:", attempt, "error:", err)
	// Output: attempts: 3 error: <nil>
}
