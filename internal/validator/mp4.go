package validator

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
)

// mp4Signatures are the two box-size/ftyp headers the original parser
// recognizes: a 0x18 or 0x20-byte ftyp box length prefix followed by the
// literal "ftyp" tag.
var mp4Signatures = [][]byte{
	{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'},
	{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p'},
}

// checkMP4 validates a direct MP4 URL: a HEAD sanity check (content-type,
// minimum size) followed by sniffing the first bytes of the body for an
// ftyp box.
func checkMP4(ctx context.Context, client *http.Client, url string) bool {
	head, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	headResp, err := client.Do(head)
	if err != nil {
		return false
	}
	headResp.Body.Close()
	if headResp.StatusCode >= 400 {
		return false
	}
	if ct := strings.ToLower(headResp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "video/mp4") {
		return false
	}
	if cl := headResp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n < 1024 {
			return false
		}
	}

	get, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	get.Header.Set("Range", "bytes=0-7")
	getResp, err := client.Do(get)
	if err != nil {
		return false
	}
	defer getResp.Body.Close()

	chunk := make([]byte, 8)
	n, _ := getResp.Body.Read(chunk)
	chunk = chunk[:n]
	for _, sig := range mp4Signatures {
		if bytes.Equal(chunk, sig) {
			return true
		}
	}
	return false
}
