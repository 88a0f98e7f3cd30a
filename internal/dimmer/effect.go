package dimmer

import (
	"fmt"
	"strings"
)

// OnEffect selects what TurnOn does.
type OnEffect int

const (
	// OnEffectDefault turns on at the maximum level
	OnEffectDefault OnEffect = iota
	// OnEffectPulse ramps up and down repeatedly
	OnEffectPulse
	// OnEffectLevel turns on at the configured on effect level
	OnEffectLevel
	// OnEffectLastSetting restores the previously configured effect and level
	OnEffectLastSetting
)

var onEffectNames = map[OnEffect]string{
	OnEffectDefault:     "Default",
	OnEffectPulse:       "Pulse",
	OnEffectLevel:       "EffectLevel",
	OnEffectLastSetting: "LastSetting",
}

// OnEffects lists all known effects in declaration order.
func OnEffects() []OnEffect {
	return []OnEffect{OnEffectDefault, OnEffectPulse, OnEffectLevel, OnEffectLastSetting}
}

func (e OnEffect) IsValid() bool {
	_, ok := onEffectNames[e]
	return ok
}

func (e OnEffect) String() string {
	name, ok := onEffectNames[e]
	if !ok {
		return fmt.Sprintf("OnEffect(%d)", int(e))
	}
	return name
}

// ParseOnEffect resolves an effect by name, ignoring case.
// "onEffectLevel" is accepted as an alias of EffectLevel.
func ParseOnEffect(name string) (OnEffect, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "oneffectlevel" {
		return OnEffectLevel, nil
	}
	for effect, effectName := range onEffectNames {
		if strings.ToLower(effectName) == normalized {
			return effect, nil
		}
	}
	return OnEffectDefault, fmt.Errorf("%w: '%s'", ErrUnknownEffect, name)
}

func (e OnEffect) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEffect, int(e))
	}
	return []byte(e.String()), nil
}

func (e *OnEffect) UnmarshalText(text []byte) error {
	effect, err := ParseOnEffect(string(text))
	if err != nil {
		return err
	}
	*e = effect
	return nil
}
