package filter

import (
	"reflect"
	"slices"
	"testing"

	"go.uber.org/goleak"

	"github.com/ziadkadry99/kabar/internal/article"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func scenario() []article.Article {
	return []article.Article{
		{ID: "a1", Topic: "Berita", Title: "Gempa"},
		{ID: "a2", Topic: "Edukasi", Title: "Fisika Dasar"},
	}
}

func catalog() []article.Article {
	return []article.Article{
		{ID: "1", Topic: "Berita", Title: "Gempa di Cianjur", Excerpt: "Laporan lapangan"},
		{ID: "2", Topic: "Edukasi", Title: "Fisika Dasar", Excerpt: "Hukum Newton"},
		{ID: "3", Topic: "Berita", Title: "Banjir Jakarta", Excerpt: "Curah hujan tinggi"},
		{ID: "4", Topic: "Sains", Title: "Lubang Hitam", Excerpt: "Fisika relativitas"},
		{ID: "5", Topic: "Berita", Title: "Pemilu", Excerpt: ""},
	}
}

func ids(articles []article.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func checkIDs(t *testing.T, got []article.Article, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if g := ids(got); !slices.Equal(g, want) {
		t.Errorf("visible = %v, want %v", g, want)
	}
}

func TestApplyScenarioTopic(t *testing.T) {
	checkIDs(t, Apply(scenario(), State{ActiveTopic: "Berita"}, Options{}), "a1")
}

func TestApplyScenarioQuery(t *testing.T) {
	checkIDs(t, Apply(scenario(), State{ActiveTopic: article.AllTopics, Query: "fisika"}, Options{}), "a2")
}

func TestApplyIdentity(t *testing.T) {
	c := catalog()
	if got := Apply(c, DefaultState(), Options{}); !reflect.DeepEqual(got, c) {
		t.Errorf("default state changed the collection: %v", ids(got))
	}
	// zero state means all topics
	if got := Apply(c, State{}, Options{MatchExcerpt: true}); !reflect.DeepEqual(got, c) {
		t.Errorf("zero state changed the collection: %v", ids(got))
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	checkIDs(t, Apply(catalog(), State{ActiveTopic: "Berita"}, Options{}), "1", "3", "5")
}

func TestApplyTopicIsCaseSensitive(t *testing.T) {
	checkIDs(t, Apply(catalog(), State{ActiveTopic: "berita"}, Options{}))
}

func TestApplyQueryTrimmedAndCaseInsensitive(t *testing.T) {
	checkIDs(t, Apply(catalog(), State{ActiveTopic: article.AllTopics, Query: "  BANJIR "}, Options{}), "3")

	got := Apply(catalog(), State{ActiveTopic: article.AllTopics, Query: "   "}, Options{})
	if len(got) != len(catalog()) {
		t.Errorf("blank query should match everything, got %d", len(got))
	}
}

func TestApplyMatchExcerpt(t *testing.T) {
	s := State{ActiveTopic: article.AllTopics, Query: "fisika"}
	checkIDs(t, Apply(catalog(), s, Options{}), "2")
	checkIDs(t, Apply(catalog(), s, Options{MatchExcerpt: true}), "2", "4")
}

func TestApplyBothPredicates(t *testing.T) {
	s := State{ActiveTopic: "Sains", Query: "fisika"}
	checkIDs(t, Apply(catalog(), s, Options{}))
	checkIDs(t, Apply(catalog(), s, Options{MatchExcerpt: true}), "4")
}

// Every subset is a subsequence of the input restricted to matching elements.
func TestApplyStability(t *testing.T) {
	c := catalog()
	opts := Options{MatchExcerpt: true}
	states := []State{
		{ActiveTopic: "Berita", Query: "a"},
		{ActiveTopic: article.AllTopics, Query: "i"},
		{ActiveTopic: "Edukasi"},
		{ActiveTopic: "Nope"},
	}
	for _, s := range states {
		want := []string{}
		for _, a := range c {
			if s.MatchesTopic(a) && s.MatchesQuery(a, opts) {
				want = append(want, a.ID)
			}
		}
		if got := ids(Apply(c, s, opts)); !slices.Equal(got, want) {
			t.Errorf("state %+v: got %v, want %v", s, got, want)
		}
	}
}

func TestApplyEmptyCollection(t *testing.T) {
	got := Apply(nil, DefaultState(), Options{})
	if got == nil || len(got) != 0 {
		t.Errorf("expected a non-nil empty result, got %#v", got)
	}
}
