package config

import "os"

func IsDebug() bool {
	return os.Getenv("INTAKE_DEBUG") == "1"
}
