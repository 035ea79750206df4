package format

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

// decodeBody returns a reader over resp.Body that transparently decodes a
// brotli-encoded response. Most servers in the wild either don't set
// Content-Encoding (net/http's transport already unwraps gzip) or send
// "br", which net/http does not handle natively.
func decodeBody(resp *http.Response) io.Reader {
	if resp.Header.Get("Content-Encoding") == "br" {
		return brotli.NewReader(resp.Body)
	}
	return resp.Body
}
