package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch reloads the configuration whenever the file behind v changes and
// hands the result to onChange. Invalid files report their error and keep
// the previous configuration in place. onChange runs on fsnotify's
// goroutine.
func Watch(v *viper.Viper, onChange func(*Config, error)) {
	v.OnConfigChange(reloadHandler(v, onChange))
	v.WatchConfig()
}

func reloadHandler(v *viper.Viper, onChange func(*Config, error)) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(Load(v))
	}
}
