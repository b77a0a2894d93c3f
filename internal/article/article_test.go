package article

import (
	"errors"
	"testing"
)

func sample() []Article {
	return []Article{
		{ID: "a1", Topic: TopicBerita, Title: "Gempa"},
		{ID: "a2", Topic: TopicEdukasi, Title: "Fisika Dasar"},
		{ID: "a3", Topic: TopicBerita, Title: "Banjir"},
	}
}

func TestFind(t *testing.T) {
	got, fallback, ok := Find(sample(), "a2")
	if !ok || fallback {
		t.Fatalf("expected direct hit, got ok=%v fallback=%v", ok, fallback)
	}
	if got.ID != "a2" {
		t.Errorf("expected a2, got %s", got.ID)
	}
}

func TestFindFallsBackToFirst(t *testing.T) {
	got, fallback, ok := Find(sample(), "zz")
	if !ok {
		t.Fatal("expected ok for non-empty collection")
	}
	if !fallback {
		t.Error("expected fallback to be reported")
	}
	if got.ID != "a1" {
		t.Errorf("expected first article a1, got %s", got.ID)
	}
}

func TestFindEmptyCollection(t *testing.T) {
	if _, _, ok := Find(nil, "a1"); ok {
		t.Error("expected ok=false for empty collection")
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := Lookup(sample(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTopicsFirstSeenOrder(t *testing.T) {
	got := Topics(sample())
	want := []string{TopicBerita, TopicEdukasi}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topic[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopicsVocabularyOrder(t *testing.T) {
	articles := []Article{
		{ID: "1", Topic: "Kuliner"},
		{ID: "2", Topic: TopicSains},
		{ID: "3", Topic: TopicBerita},
		{ID: "4", Topic: "Kuliner"},
		{ID: "5", Topic: "Alam"},
		{ID: "6"},
		{ID: "7", Topic: AllTopics},
	}
	got := Topics(articles)
	want := []string{TopicBerita, TopicSains, "Kuliner", "Alam"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topic[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsKnownTopic(t *testing.T) {
	if !IsKnownTopic("Sains") {
		t.Error("expected Sains to be known")
	}
	if IsKnownTopic("sains") {
		t.Error("topic match must be case-sensitive")
	}
}
