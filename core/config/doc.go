// Package config loads typed configuration structs from environment
// variables, caching each type so repeated loads are cheap and
// consistent.
//
// Struct fields use caarlos0/env tags. A .env file, when present, is
// loaded once before the first parse:
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// or panic on startup misconfiguration
//	config.MustLoad(&cfg)
//
// # Caching
//
// Each concrete type parses once per process. Two loads of the same type
// observe identical values even if the environment changed in between,
// which keeps configuration stable for the lifetime of the application:
//
//	var a, b RedisConfig
//	config.MustLoad(&a)
//	config.MustLoad(&b) // cached, b == a
//
// Distinct types cache independently, so packages can declare their own
// config structs without coordinating.
package config
