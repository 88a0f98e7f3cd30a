// Package dimmer implements the level, ramp and on-effect state machine of a single
// dimmable output.
//
// A Controller never writes to the hardware from its command methods. Commands only
// change the target state; the owner calls Process at a roughly constant cadence to
// advance ramps and pulses and to apply pending level changes to the Sink.
//
// A Controller is not safe for concurrent use.
package dimmer

// Sink is the hardware output a Controller writes its level to.
type Sink interface {
	// ConfigureAsOutput prepares the given pin to be driven
	ConfigureAsOutput(pin int) error
	// WriteAnalog sets the given pin to a value in the native output range of the hardware
	WriteAnalog(pin int, value int) error
}

// Diagnostics receives a message for every operation outcome while debug mode is enabled.
type Diagnostics interface {
	Log(message string)
}

// DiagnosticsFunc adapts a plain function to the Diagnostics interface.
type DiagnosticsFunc func(message string)

func (f DiagnosticsFunc) Log(message string) {
	f(message)
}
