package sensor

import "errors"

var (
	// ErrAlreadyOpen is returned by Open on a device that is open.
	ErrAlreadyOpen = errors.New("sensor: device already open")

	// ErrNotOpen is returned by operations that require an open device.
	ErrNotOpen = errors.New("sensor: device not open")

	// ErrNotProvisioned is returned when the sensor reports it has never
	// been initialized by the Windows driver and so carries no key
	// material to recover.
	ErrNotProvisioned = errors.New("sensor: device is not initialized, " +
		"pair it once under the Windows driver to provision its flash")

	// ErrUntrustedDevice is returned when the device's key-exchange key
	// did not verify against the trust anchor.
	ErrUntrustedDevice = errors.New("sensor: untrusted device")
)
