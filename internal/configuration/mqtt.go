package configuration

type MqttConfig struct {
	Enabled bool `json:"enabled"`
	// Broker url, f.ex. tcp://192.168.1.2:1883
	Broker   string `json:"broker"`
	Username string `json:"username"`
	Password string `json:"password"`
	// ClientId defaults to a random id when empty
	ClientId string `json:"clientId"`
	// Prefix of the command and state topics of each light
	TopicPrefix string `json:"topicPrefix"`
	// Prefix used to announce lights to Home Assistant, discovery is disabled when empty
	DiscoveryPrefix string `json:"discoveryPrefix"`
}
