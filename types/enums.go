package types

type ChatState string

const (
	StateWelcomed        ChatState = "welcomed"
	StateConsentPending  ChatState = "consent_pending"
	StateConsentResolved ChatState = "consent_resolved"
	StateTopicMenu       ChatState = "topic_menu"
	StateCardMenu        ChatState = "card_menu"
	StateCardDelivered   ChatState = "card_delivered"
	StateLocked          ChatState = "locked"
)

// Event types. The set is open: the log accepts any string, these are the
// ones the bot itself appends.
const (
	EventStart          string = "start"
	EventConsentShown   string = "consent-shown"
	EventSubscribe      string = "subscribe"
	EventConsentDecline string = "consent-decline"
	EventUnsubscribe    string = "unsubscribe"
	EventTopic          string = "topic"
	EventDraw           string = "draw"
	EventLockHit        string = "lock-hit"
	EventBroadcast      string = "broadcast"
)
