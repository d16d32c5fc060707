package deck

import (
	"errors"
	"strings"
	"testing"
)

func TestPickIsDeterministic(t *testing.T) {
	d := New()

	text, err := d.Pick(TopicMoney, "3")
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if !strings.Contains(text, "не видно твою пользу") {
		t.Fatalf("money card 3 returned unexpected text: %q", text)
	}

	again, err := d.Pick(TopicMoney, "3")
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if text != again {
		t.Fatal("explicit picks must return the same text every time")
	}
}

func TestPickErrors(t *testing.T) {
	d := New()

	if _, err := d.Pick("tarot", "1"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("unknown topic: got %v, want ErrTopicNotFound", err)
	}
	if _, err := d.Pick(TopicThink, "6"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("unknown key: got %v, want ErrCardNotFound", err)
	}
}

func TestDrawUnknownTopic(t *testing.T) {
	d := NewSeeded(1)
	if _, _, err := d.Draw("tarot"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("got %v, want ErrTopicNotFound", err)
	}
}

func TestDrawStaysWithinFixedCards(t *testing.T) {
	d := NewSeeded(1)

	counts := map[string]int{}
	const n = 30000
	for i := 0; i < n; i++ {
		key, text, err := d.Draw(TopicTalent)
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		fixed, err := d.Pick(TopicTalent, key)
		if err != nil || fixed != text {
			t.Fatalf("draw returned key %q with text not matching the fixed card", key)
		}
		counts[key]++
	}

	if len(counts) != len(CardKeys) {
		t.Fatalf("expected all %d cards to appear, got %d", len(CardKeys), len(counts))
	}

	// Each fixed card lands with probability 7/30.
	want := float64(n) * 7.0 / 30.0
	for key, got := range counts {
		if diff := float64(got) - want; diff > want*0.1 || diff < -want*0.1 {
			t.Fatalf("card %s drawn %d times, want about %.0f", key, got, want)
		}
	}
}

func TestTopicsAndTitles(t *testing.T) {
	topics := Topics()
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}
	for _, topic := range topics {
		if !TopicExists(topic) {
			t.Fatalf("topic %q missing from the deck", topic)
		}
		if TopicTitle(topic) == "" {
			t.Fatalf("topic %q has no title", topic)
		}
	}
	if TopicExists("tarot") {
		t.Fatal("unknown topic must not exist")
	}
}
