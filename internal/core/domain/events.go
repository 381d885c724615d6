package domain

// Topic identifies one observable facet of workspace state. Listeners
// subscribe to topics instead of reflecting over field names.
type Topic int

const (
	TopicPackage Topic = iota
	TopicBuildTarget
	TopicRunTarget
	TopicBenchTarget
	TopicPlatformTarget
	TopicFeatures
	TopicProfile
	TopicTargets
)

var topicNames = map[Topic]string{
	TopicPackage:        "selectedPackage",
	TopicBuildTarget:    "selectedBuildTarget",
	TopicRunTarget:      "selectedRunTarget",
	TopicBenchTarget:    "selectedBenchmarkTarget",
	TopicPlatformTarget: "selectedPlatformTarget",
	TopicFeatures:       "selectedFeatures",
	TopicProfile:        "currentProfile",
	TopicTargets:        "targets",
}

func (t Topic) String() string {
	if name, ok := topicNames[t]; ok {
		return name
	}
	return "unknown"
}

// Notifier is a typed publish/subscribe registry over Topics. Delivery is
// synchronous, in registration order, on the caller's goroutine. A listener
// that panics propagates to the publisher's caller.
type Notifier struct {
	listeners map[Topic][]func(Topic)
}

// NewNotifier returns an empty registry.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[Topic][]func(Topic))}
}

// Subscribe registers fn for the given topic.
func (n *Notifier) Subscribe(topic Topic, fn func(Topic)) {
	n.listeners[topic] = append(n.listeners[topic], fn)
}

// Publish delivers each topic to its listeners, one notification per topic.
func (n *Notifier) Publish(topics ...Topic) {
	for _, topic := range topics {
		for _, fn := range n.listeners[topic] {
			fn(topic)
		}
	}
}
