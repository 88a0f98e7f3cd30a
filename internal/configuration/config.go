package configuration

import (
	"github.com/markusressel/dim2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"os"
	"time"
)

type Configuration struct {
	DbPath      string `json:"dbPath"`
	JournalSize int    `json:"journalSize"`

	// Time interval between two Process calls of every light controller
	TickRate time.Duration `json:"tickRate"`
	// Number of ticks used to compute tick cadence statistics
	TickRollingWindowSize int `json:"tickRollingWindowSize"`

	Lights []LightConfig `json:"lights"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Mqtt       MqttConfig       `json:"mqtt"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("dim2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/dim2go/")
	}

	viper.SetEnvPrefix("dim2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/dim2go/dim2go.db")
	viper.SetDefault("journalSize", 500)
	viper.SetDefault("tickRate", 10*time.Millisecond)
	viper.SetDefault("tickRollingWindowSize", 100)

	viper.SetDefault("lights", []LightConfig{})

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topicPrefix", "dim2go")
	viper.SetDefault("mqtt.discoveryPrefix", "homeassistant")
}

// DetectAndReadConfigFile reads the config file and returns its path.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}
}

// FindLight returns the configuration of the light with the given id
func FindLight(id string) (LightConfig, bool) {
	for _, light := range CurrentConfig.Lights {
		if light.ID == id {
			return light, true
		}
	}
	return LightConfig{}, false
}
