package eventbus

// TopicDomainEvents carries every content, bot and meeting event. The name
// can be overridden from config.yaml (kafka.topic) with SetDomainTopic.
var TopicDomainEvents = NewTopic("content-rebirth.events")

func SetDomainTopic(name string) {
	if name != "" {
		TopicDomainEvents = NewTopic(name)
	}
}
