package configuration

import (
	"github.com/markusressel/dim2go/internal/dimmer"
	"github.com/mitchellh/mapstructure"
	"reflect"
)

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		onEffectHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// onEffectHookFunc decodes effect names like "Pulse" into a dimmer.OnEffect
func onEffectHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(dimmer.OnEffectDefault) {
			return data, nil
		}
		if f.Kind() != reflect.String {
			return data, nil
		}
		return dimmer.ParseOnEffect(data.(string))
	}
}
