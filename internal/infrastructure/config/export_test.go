package config

import "reflect"

// ConfigKeys exposes the env-bound key list to the external test package
func ConfigKeys() []string {
	return configKeys(reflect.TypeOf(Config{}), "")
}
