package bridge

import "fmt"

func (b *Bridge) configTopic(id string) string {
	return fmt.Sprintf("%s/light/%s/config", b.cfg.DiscoveryPrefix, id)
}

func (b *Bridge) commandTopic(id string) string {
	return fmt.Sprintf("%s/light/%s/set", b.cfg.TopicPrefix, id)
}

func (b *Bridge) stateTopic(id string) string {
	return fmt.Sprintf("%s/light/%s/state", b.cfg.TopicPrefix, id)
}
