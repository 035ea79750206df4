package channel

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/width"
)

// sortSegment is one tagged run in a mixed sort key. kind is "a" (alpha or
// symbol run, lowercased), "n" (natural number run, compared numerically)
// or "c" (CJK run, compared by pinyin romanization). Segments never compare
// across kind tags, matching the original mixed_sort_key tuple semantics.
type sortSegment struct {
	kind string
	text string
	num  int64
}

var segmentPattern = regexp.MustCompile(`([a-zA-Z]+|[^\w\s\p{Han}]+)|([0-9]+)|(\p{Han}+)`)

var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Normal
	a.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}()

// SortKey computes the mixed alpha/numeric/pinyin sort key for a channel
// display name. Two names compare equal under this key only when their
// segment sequences (kind and value, in order) are identical.
func SortKey(name string) []sortSegment {
	// Fold fullwidth ASCII digits/punctuation (common in provider channel
	// names, e.g. "ＣＣＴＶ１") to halfwidth before segmenting, so they sort
	// with their ordinary-width equivalents.
	name = width.Narrow.String(name)
	matches := segmentPattern.FindAllStringSubmatch(name, -1)
	key := make([]sortSegment, 0, len(matches))
	for _, m := range matches {
		alpha, num, han := m[1], m[2], m[3]
		switch {
		case alpha != "":
			key = append(key, sortSegment{kind: "a", text: strings.ToLower(alpha)})
		case num != "":
			n, err := strconv.ParseInt(num, 10, 64)
			if err != nil {
				key = append(key, sortSegment{kind: "a", text: num})
				continue
			}
			key = append(key, sortSegment{kind: "n", num: n})
		case han != "":
			key = append(key, sortSegment{kind: "c", text: toPinyin(han)})
		}
	}
	return key
}

func toPinyin(han string) string {
	syllables := pinyin.Pinyin(han, pinyinArgs)
	var b strings.Builder
	for _, group := range syllables {
		if len(group) == 0 {
			continue
		}
		b.WriteString(strings.ToLower(group[0]))
	}
	return b.String()
}

// LessSortKey reports whether a sorts before b under the mixed key,
// comparing segment-by-segment and falling back to fewer-segments-first
// when one key is a strict prefix of the other.
func LessSortKey(a, b []sortSegment) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		sa, sb := a[i], b[i]
		if sa.kind != sb.kind {
			return sa.kind < sb.kind
		}
		switch sa.kind {
		case "n":
			if sa.num != sb.num {
				return sa.num < sb.num
			}
		default:
			if sa.text != sb.text {
				return sa.text < sb.text
			}
		}
	}
	return len(a) < len(b)
}
