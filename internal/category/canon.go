package category

import "sync"

var canonMu sync.RWMutex

// canonicalCategoryNames folds a verbose provider category label to its
// short display form, mirroring the original service's category_map.
// Applied only by the M3U→TXT converter path, not the general format
// parser, which must preserve raw provider names for the validator.
var canonicalCategoryNames = map[string]string{
	"央视频道": "央视",
	"卫视频道": "卫视",
	"纪录频道": "纪录",
	"体育频道": "体育",
	"电影频道": "电影",
	"儿童频道": "儿童",
	"综艺频道": "综艺",
}

// canonicalChannelNames folds channel-name aliases to a single canonical
// form, mirroring the original service's channel_map (e.g. collapsing
// "CCTV1综合" and "CCTV1" to "CCTV1").
var canonicalChannelNames = map[string]string{
	"CCTV1综合":    "CCTV1",
	"CCTV2财经":    "CCTV2",
	"CCTV3综艺":    "CCTV3",
	"CCTV4中文国际":  "CCTV4",
	"CCTV4美洲":    "CCTV4",
	"CCTV4欧洲":    "CCTV4",
	"CCTV5体育":    "CCTV5",
	"CCTV5+体育赛事": "CCTV5+",
	"CCTV6电影":    "CCTV6",
	"CCTV7国防军事":  "CCTV7",
	"CCTV8电视剧":   "CCTV8",
	"CCTV9纪录":    "CCTV9",
	"CCTV10科教":   "CCTV10",
	"CCTV11戏曲":   "CCTV11",
	"CCTV12社会与法": "CCTV12",
	"CCTV13新闻":   "CCTV13",
	"CCTV14少儿":   "CCTV14",
	"CCTV15音乐":   "CCTV15",
	"CCTV16财经":   "CCTV16",
	"CCTV17农业农村": "CCTV17",
	"CGTN外语纪录":   "CGTN纪录",
	"CGTN西班牙语":   "CGTN西语",
	"CGTN阿拉伯语":   "CGTN阿语",
}

// CanonicalizeCategory returns the short form of name if one is known,
// else name unchanged.
func CanonicalizeCategory(name string) string {
	canonMu.RLock()
	defer canonMu.RUnlock()
	if short, ok := canonicalCategoryNames[name]; ok {
		return short
	}
	return name
}

// CanonicalizeChannel returns the canonical alias of name if one is
// known, else name unchanged.
func CanonicalizeChannel(name string) string {
	canonMu.RLock()
	defer canonMu.RUnlock()
	if short, ok := canonicalChannelNames[name]; ok {
		return short
	}
	return name
}

// RegisterChannelAlias adds (or overrides) one channel-name canonicalization
// rule, for callers that load provider-specific alias tables at startup.
func RegisterChannelAlias(alias, canonical string) {
	canonMu.Lock()
	defer canonMu.Unlock()
	canonicalChannelNames[alias] = canonical
}

// RegisterCategoryAlias adds (or overrides) one category-name
// canonicalization rule.
func RegisterCategoryAlias(alias, canonical string) {
	canonMu.Lock()
	defer canonMu.Unlock()
	canonicalCategoryNames[alias] = canonical
}
