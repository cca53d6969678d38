package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlag binds f to key on the global viper instance.
func bindFlag(f *pflag.Flag, key string) {
	if f == nil {
		return
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}
