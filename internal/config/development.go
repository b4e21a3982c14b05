package config

import (
	"os"
	"strconv"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	if v, err := strconv.ParseBool(development); err == nil {
		return v
	}
	return development != "0"
}
