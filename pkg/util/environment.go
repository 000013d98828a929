package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable returns the named value or fallback when unset or empty.
func GetEnvironmentVariable(env map[string]string, name string, fallback string) string {
	if value := env[name]; value != "" {
		return value
	}

	return fallback
}

func GetEnvironmentInt(env map[string]string, name string, fallback int) (int, error) {
	value := env[name]
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}
