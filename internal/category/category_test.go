package category

import "testing"

func TestResolveFallback(t *testing.T) {
	m := New()
	m.Update(Descriptor{Name: "sports", Icon: "⚽"})

	d := m.Resolve("ESPN", "sports")
	if d.Name != "sports" {
		t.Errorf("Resolve() = %q, want sports", d.Name)
	}
}

func TestResolveUnknownFallbackGoesUncategorized(t *testing.T) {
	m := New()
	d := m.Resolve("Channel1", "does-not-exist")
	if d.Name != Uncategorized {
		t.Errorf("Resolve() = %q, want %q", d.Name, Uncategorized)
	}
}

func TestResolveExplicitBindingDominatesFallback(t *testing.T) {
	m := New()
	m.Update(
		Descriptor{Name: "premium", Icon: "✨", Channels: []string{"CCTV1"}},
		Descriptor{Name: "news", Icon: "📰"},
	)

	d := m.Resolve("CCTV1", "news")
	if d.Name != "premium" {
		t.Errorf("Resolve() = %q, want premium", d.Name)
	}
}

func TestResolveFirstCategoryWinsOnDuplicateBinding(t *testing.T) {
	m := New()
	m.Update(
		Descriptor{Name: "first", Channels: []string{"Shared"}},
		Descriptor{Name: "second", Channels: []string{"Shared"}},
	)

	d := m.Resolve("Shared", Uncategorized)
	if d.Name != "first" {
		t.Errorf("Resolve() = %q, want first (stable tie-break)", d.Name)
	}
}

func TestIsExcludedWildcard(t *testing.T) {
	d := Descriptor{Name: "premium", Channels: []string{"CCTV1"}, Excludes: []string{"*"}}
	if IsExcluded(d, "CCTV1") {
		t.Error("IsExcluded(bound channel) = true, want false")
	}
	if !IsExcluded(d, "OtherChannel") {
		t.Error("IsExcluded(unbound channel) = false, want true")
	}
}

func TestIsExcludedExplicitName(t *testing.T) {
	d := Descriptor{Name: "news", Excludes: []string{"Shopping"}}
	if !IsExcluded(d, "Shopping") {
		t.Error("IsExcluded(Shopping) = false, want true")
	}
	if IsExcluded(d, "CNN") {
		t.Error("IsExcluded(CNN) = true, want false")
	}
}

func TestIsIgnored(t *testing.T) {
	m := New()
	m.Update(Descriptor{Name: "overseas"})
	m.SetIgnored("overseas")

	if !m.IsIgnored("overseas") {
		t.Error("IsIgnored(overseas) = false, want true")
	}
	if m.IsIgnored("news") {
		t.Error("IsIgnored(news) = true, want false")
	}
}

func TestGroupsCanonicalOrder(t *testing.T) {
	m := New()
	m.Update(
		Descriptor{Name: "news"},
		Descriptor{Name: "sports"},
		Descriptor{Name: "movies"},
	)

	got := m.Groups()
	want := []string{Uncategorized, "news", "sports", "movies"}
	if len(got) != len(want) {
		t.Fatalf("Groups() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Groups()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	m := New()
	m.Update(Descriptor{Name: "news", Channels: []string{"CNN"}})
	m.Remove("news")
	if _, ok := m.Get("news"); ok {
		t.Error("Get(news) found after Remove")
	}
	d := m.Resolve("CNN", Uncategorized)
	if d.Name != Uncategorized {
		t.Errorf("Resolve(CNN) after Remove = %q, want %q (index rebuilt)", d.Name, Uncategorized)
	}

	m.Update(Descriptor{Name: "sports"})
	m.Clear()
	if groups := m.Groups(); len(groups) != 1 || groups[0] != Uncategorized {
		t.Errorf("Groups() after Clear = %v, want [%s]", groups, Uncategorized)
	}
}

func TestCanonicalizeCategory(t *testing.T) {
	if got := CanonicalizeCategory("体育频道"); got != "体育" {
		t.Errorf("CanonicalizeCategory() = %q, want 体育", got)
	}
	if got := CanonicalizeCategory("Unknown Category"); got != "Unknown Category" {
		t.Errorf("CanonicalizeCategory(unmapped) = %q, want unchanged", got)
	}
}

func TestCanonicalizeChannelKnownAlias(t *testing.T) {
	if got := CanonicalizeChannel("CCTV1综合"); got != "CCTV1" {
		t.Errorf("CanonicalizeChannel() = %q, want CCTV1", got)
	}
}

func TestRegisterChannelAlias(t *testing.T) {
	RegisterChannelAlias("CCTV1 Integrated", "CCTV1")
	if got := CanonicalizeChannel("CCTV1 Integrated"); got != "CCTV1" {
		t.Errorf("CanonicalizeChannel() = %q, want CCTV1", got)
	}
}
