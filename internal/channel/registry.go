package channel

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/commis/streamdir/internal/category"
)

// Registry groups Channels under category names, in the canonical order
// category.Manager hands out, and renders the grouped TXT/M3U output.
type Registry struct {
	mu         sync.RWMutex
	categories *category.Manager
	groups     map[string]map[string]*Channel // group -> channel name -> Channel
	playbackURL string
	catchupSource string
}

// New returns an empty Registry bound to a category manager.
func New(categories *category.Manager) *Registry {
	return &Registry{
		categories:    categories,
		groups:        make(map[string]map[string]*Channel),
		catchupSource: `?playseek=${(b)yyyyMMddHHmmss}-${(e)yyyyMMddHHmmss}`,
	}
}

// SetPlayback records the catch-up playback base URL used in the M3U
// #EXTM3U header's x-tvg-url/catchup attributes. Empty clears it.
func (r *Registry) SetPlayback(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playbackURL = url
}

// SetCatchupSource overrides the catchup-source template.
func (r *Registry) SetCatchupSource(tmpl string) {
	if tmpl == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catchupSource = tmpl
}

// Clear removes all channels and groups.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = make(map[string]map[string]*Channel)
}

// Add resolves channelName's category against hintGroup and files a new
// endpoint under it, skipping channels the resolved category excludes.
func (r *Registry) Add(hintGroup, channelName, url, id, logo string) {
	d := r.categories.Resolve(channelName, hintGroup)
	if category.IsExcluded(d, channelName) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureGroup(d.Name)
	ch, ok := r.groups[d.Name][channelName]
	if !ok {
		ch = New(id, channelName)
		r.groups[d.Name][channelName] = ch
	}
	ch.SetLogo(logo)
	ch.SetTitle(d.Name)
	ch.AddURL(Intern(url))
}

// AddChannel files a fully-built Channel under an explicit group name,
// for callers (e.g. the converter) that already know the destination
// group and don't want category resolution applied.
func (r *Registry) AddChannel(group string, ch *Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureGroup(group)
	r.groups[group][ch.Name()] = ch
}

func (r *Registry) ensureGroup(name string) {
	if _, ok := r.groups[name]; !ok {
		r.groups[name] = make(map[string]*Channel)
	}
}

// Get returns the Channel registered under group with the given name.
func (r *Registry) Get(group, name string) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[group]
	if !ok {
		return nil, false
	}
	ch, ok := g[name]
	return ch, ok
}

// Groups returns group names present in the registry, ordered per
// category.Manager.Groups with any group absent there appended at the end
// in lexical order by name; the order those groups were added in is not
// kept.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orderedGroups()
}

func (r *Registry) orderedGroups() []string {
	canonical := r.categories.Groups()
	index := make(map[string]int, len(canonical))
	for i, name := range canonical {
		index[name] = i
	}
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ii, iok := index[names[i]]
		ij, jok := index[names[j]]
		switch {
		case iok && jok:
			return ii < ij
		case iok:
			return true
		case jok:
			return false
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// sortedChannels returns a group's channels ordered by the mixed sort key.
func (r *Registry) sortedChannels(group string) []*Channel {
	chans := make([]*Channel, 0, len(r.groups[group]))
	for _, ch := range r.groups[group] {
		chans = append(chans, ch)
	}
	keys := make(map[*Channel][]sortSegment, len(chans))
	for _, ch := range chans {
		keys[ch] = SortKey(ch.Name())
	}
	sort.Slice(chans, func(i, j int) bool {
		return LessSortKey(keys[chans[i]], keys[chans[j]])
	})
	return chans
}

// TotalCount sums endpoint counts across every non-ignored group.
func (r *Registry) TotalCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for group, chans := range r.groups {
		if r.categories.IsIgnored(group) {
			continue
		}
		for _, ch := range chans {
			total += ch.Count()
		}
	}
	return total
}

// Each invokes fn once per (group, channel) pair currently registered,
// skipping categories the category.Manager marks ignored. Used by callers
// that need to walk every endpoint, such as a live re-validation pass.
func (r *Registry) Each(fn func(group string, ch *Channel)) {
	r.mu.RLock()
	groups := r.orderedGroups()
	snapshot := make(map[string][]*Channel, len(groups))
	for _, group := range groups {
		if r.categories.IsIgnored(group) {
			continue
		}
		chans := make([]*Channel, 0, len(r.groups[group]))
		for _, ch := range r.groups[group] {
			chans = append(chans, ch)
		}
		snapshot[group] = chans
	}
	r.mu.RUnlock()

	for _, group := range groups {
		for _, ch := range snapshot[group] {
			fn(group, ch)
		}
	}
}

func (r *Registry) header() string {
	if r.playbackURL == "" {
		return "#EXTM3U"
	}
	escapedPlayback := strings.ReplaceAll(r.playbackURL, `"`, `\"`)
	escapedSource := strings.ReplaceAll(r.catchupSource, `"`, `\"`)
	return fmt.Sprintf(`#EXTM3U x-tvg-url="%s" catchup="append" catchup-source="%s"`,
		escapedPlayback, escapedSource)
}

// SerializeM3U renders the full grouped M3U playlist.
func (r *Registry) SerializeM3U() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := []string{r.header()}
	for _, group := range r.orderedGroups() {
		for _, ch := range r.sortedChannels(group) {
			if m := ch.M3U(group); m != "" {
				lines = append(lines, m)
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SerializeTXT renders the full grouped TXT playlist, one "<group>,#genre#"
// header line per group followed by its channels.
func (r *Registry) SerializeTXT() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var lines []string
	for _, group := range r.orderedGroups() {
		lines = append(lines, fmt.Sprintf("%s,#genre#", group))
		for _, ch := range r.sortedChannels(group) {
			if t := ch.TXT(); t != "" {
				lines = append(lines, t)
			}
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
