// Package config loads service configuration with Viper.
//
// Values come from a YAML file, then from the environment. A .env file is
// loaded into the environment first with godotenv. An environment variable
// such as SERVER_PORT or LOGGING_LEVEL overrides the nested key it names.
//
//	var cfg Config
//	err := config.Load("restdemo", &cfg, config.WithConfigFile("config.yml"))
//
// A target implementing Defaulter or Validator has ApplyDefaults and Validate
// called after unmarshalling.
package config
