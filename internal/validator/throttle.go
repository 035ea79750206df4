package validator

import (
	"net/url"

	"github.com/commis/streamdir/internal/httpclient"
)

// hostLimiter caps request rate per upstream host during the segment
// reachability (Stage 3) and throughput benchmark (Stage 4) stages. It
// composes with httpclient.GlobalHostSem's concurrency cap, applied inside
// httpclient.DoWithRetry, to bound both how many requests are in flight and
// how fast new ones are dispatched against a single provider.
var hostLimiter = httpclient.NewHostLimiter(8, 4)

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}
