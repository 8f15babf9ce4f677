// Package seed provides the per-installation seed that session keys are
// derived from.
//
// The Windows driver seeds key derivation with the machine's DMI product
// name and serial so that key material wrapped on one host is useless on
// another. FromDMI reproduces that derivation from sysfs; Default returns
// the fixed placeholder seed used by hosts without usable DMI data.
package seed

import (
	"bytes"
	"os"
)

const (
	dmiProductNamePath   = "/sys/class/dmi/id/product_name"
	dmiProductSerialPath = "/sys/class/dmi/id/product_serial"
)

// Default returns the placeholder installation seed, the DMI identity of
// a stock VirtualBox guest. Keys wrapped under it unwrap on any host
// using the same placeholder.
func Default() []byte {
	return []byte("VirtualBox\x000\x00")
}

// FromDMI derives the installation seed from the host's DMI product name
// and serial. Hosts without readable DMI data fall back to Default.
func FromDMI() []byte {
	return FromFiles(dmiProductNamePath, dmiProductSerialPath)
}

// FromFiles derives the seed from the given product-name and serial
// files, laid out as name || NUL || serial || NUL. Either file being
// unreadable selects Default.
func FromFiles(namePath, serialPath string) []byte {
	name, err := os.ReadFile(namePath)
	if err != nil {
		return Default()
	}
	serial, err := os.ReadFile(serialPath)
	if err != nil {
		return Default()
	}

	var b bytes.Buffer
	b.Write(bytes.TrimRight(name, "\n"))
	b.WriteByte(0)
	b.Write(bytes.TrimRight(serial, "\n"))
	b.WriteByte(0)
	return b.Bytes()
}
