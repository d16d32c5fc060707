// Package deck selects card texts. Pure lookup plus one random mode; no
// persisted state.
package deck

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrCardNotFound  = errors.New("card not found")
)

// CardKeys is the fixed pick range within a topic.
var CardKeys = []string{"1", "2", "3", "4", "5"}

// KeyRandom is the "surprise me" pick.
const KeyRandom = "rand"

type Deck struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New() *Deck {
	return NewSeeded(time.Now().UnixNano())
}

func NewSeeded(seed int64) *Deck {
	return &Deck{rng: rand.New(rand.NewSource(seed))}
}

// Topics returns the topic codes in menu order.
func Topics() []string {
	return []string{TopicThink, TopicMoney, TopicTalent}
}

func TopicExists(topic string) bool {
	_, ok := decks[topic]
	return ok
}

// Pick returns the fixed text for an explicit card key.
func (d *Deck) Pick(topic, key string) (string, error) {
	cards, ok := decks[topic]
	if !ok {
		return "", ErrTopicNotFound
	}
	text, ok := cards[key]
	if !ok {
		return "", ErrCardNotFound
	}
	return text, nil
}

// Draw resolves a random request. Six equally likely outcomes: the five
// fixed cards, and a sixth that resamples uniformly from the same five —
// each fixed text lands with probability 1/6 + 1/6·1/5 = 7/30. There is no
// sixth distinct text; the menu just offers six choices.
func (d *Deck) Draw(topic string) (key, text string, err error) {
	cards, ok := decks[topic]
	if !ok {
		return "", "", ErrTopicNotFound
	}

	d.mu.Lock()
	idx := d.rng.Intn(6)
	if idx == 5 {
		idx = d.rng.Intn(5)
	}
	d.mu.Unlock()

	key = CardKeys[idx]
	return key, cards[key], nil
}
