// Package config loads env-tagged configuration structs using
// github.com/caarlos0/env, after optionally reading a dotenv file with
// github.com/joho/godotenv. Every package that needs settings declares its
// own Config struct; the binary loads each one with Load.
package config
