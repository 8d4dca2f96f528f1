package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type shop struct {
	CatalogURL      string        `mapstructure:"catalog_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	PageSize        int           `mapstructure:"page_size"`
}

type topics struct {
	CatalogFeed string `mapstructure:"catalog_feed"`
}

type consumers struct {
	CatalogFeedGroup string `mapstructure:"catalog_feed_group"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Shop           shop       `mapstructure:"shop"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetDefault("shop.page_size", 8)
	viper.SetDefault("shop.refresh_interval", "15m")
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	ShopConfig:
	CatalogURL=%q
	RefreshInterval=%q
	PageSize=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogFeed=%q
	Consumers:
		CatalogFeedGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Shop.CatalogURL,
		c.Shop.RefreshInterval,
		c.Shop.PageSize,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogFeed,
		c.Broker.Consumers.CatalogFeedGroup,
	)
}
