package channel

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// defaultTitle is the category label used when nothing more specific is
// known, matching the original service's "其他" ("other") default.
const defaultTitle = "其他"

// Channel groups every known stream endpoint for one logical channel name.
type Channel struct {
	mu    sync.RWMutex
	id    string
	name  string
	logo  string
	title string
	urls  map[string]*URLEndpoint
}

// New returns a Channel. If name equals id, id is cleared: the original
// model treats that as "no real id was supplied, only a repeated name".
func New(id, name string) *Channel {
	c := &Channel{
		id:    id,
		name:  name,
		title: defaultTitle,
		urls:  make(map[string]*URLEndpoint),
	}
	if id == name {
		c.id = ""
	}
	if name == "" {
		c.name = fmt.Sprintf("频道-%s", id)
	}
	return c
}

// ID returns the channel's stable identifier, if any.
func (c *Channel) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Name returns the display name.
func (c *Channel) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// SetLogo records a logo URL. Empty values are ignored.
func (c *Channel) SetLogo(logo string) {
	if logo == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logo = logo
}

// Logo returns the recorded logo URL, if any.
func (c *Channel) Logo() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logo
}

// SetTitle records the category/group title used for M3U group-title.
func (c *Channel) SetTitle(title string) {
	if title == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = title
}

// Title returns the channel's category/group title.
func (c *Channel) Title() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.title
}

// AddURL attaches an endpoint to this channel, deduplicated by URL string.
func (c *Channel) AddURL(e *URLEndpoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[e.url] = e
}

// RemoveURL detaches an endpoint. Used to prune streams that fail live
// re-validation.
func (c *Channel) RemoveURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.urls, url)
}

// URLs returns the channel's endpoints sorted by ascending speed (slowest
// first), matching the original service's sort key for output.
func (c *Channel) URLs() []*URLEndpoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*URLEndpoint, 0, len(c.urls))
	for _, e := range c.urls {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SpeedKBs() != out[j].SpeedKBs() {
			return out[i].SpeedKBs() < out[j].SpeedKBs()
		}
		return out[i].url < out[j].url
	})
	return out
}

// Count returns the number of distinct endpoints.
func (c *Channel) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.urls)
}

// TXT renders one "<name>,<url>" line per endpoint.
func (c *Channel) TXT() string {
	urls := c.URLs()
	if len(urls) == 0 {
		return ""
	}
	name := c.Name()
	lines := make([]string, 0, len(urls))
	for _, e := range urls {
		lines = append(lines, fmt.Sprintf("%s,%s", name, e.URL()))
	}
	return strings.Join(lines, "\n")
}

// M3U renders one "#EXTINF:.../<url>" pair per endpoint under the given
// group title, falling back to the channel's own title when empty.
func (c *Channel) M3U(groupTitle string) string {
	urls := c.URLs()
	if len(urls) == 0 {
		return ""
	}
	if groupTitle == "" {
		groupTitle = c.Title()
	}
	c.mu.RLock()
	id, name, logo := c.id, c.name, c.logo
	c.mu.RUnlock()

	var tvgID, tvgLogo string
	if id != "" {
		tvgID = fmt.Sprintf(`tvg-id="%s" `, id)
	}
	if logo != "" {
		tvgLogo = fmt.Sprintf(`tvg-logo="%s" `, logo)
	}

	lines := make([]string, 0, len(urls))
	for _, e := range urls {
		lines = append(lines, fmt.Sprintf(
			`#EXTINF:-1 %stvg-name="%s" %sgroup-title="%s",%s`+"\n%s",
			tvgID, name, tvgLogo, groupTitle, name, e.URL(),
		))
	}
	return strings.Join(lines, "\n")
}
