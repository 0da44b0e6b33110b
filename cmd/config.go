package cmd

// Config carries the runtime settings of the fulfillment service, loaded from
// the environment by the entry point.
type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	StalePendingMinutes    int
}
