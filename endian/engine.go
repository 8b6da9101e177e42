// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// This enables cleaner API design and improved performance for binary data operations.
//
// # Basic Usage
//
// Most callers should use GetLittleEndianEngine(), the default wire order for coldex:
//
//	import "github.com/coldex-io/coldex/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	err := ipc.WriteBuffer(body, &buffers, &offset, values, engine, nil)
//
// For interoperability with big-endian producers/consumers:
//
//	engine := endian.GetBigEndianEngine()
//
// # Performance
//
// Using EndianEngine (which includes AppendByteOrder) provides approximately 30%
// better performance for appending operations compared to ByteOrder alone:
//
//	// Using EndianEngine (recommended)
//	buf = engine.AppendUint64(buf, value)  // ~30% faster
//
//	// Using ByteOrder only
//	tmp := make([]byte, 8)
//	engine.PutUint64(tmp, value)
//	buf = append(buf, tmp...)  // Slower, extra allocation
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// SwapUint16In reverses the byte order of a uint16 in place.
func SwapUint16In(b []byte) {
	b[0], b[1] = b[1], b[0]
}

// SwapUint32In reverses the byte order of a uint32 in place.
func SwapUint32In(b []byte) {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
}

// SwapUint64In reverses the byte order of a uint64 in place.
func SwapUint64In(b []byte) {
	b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7] = b[7], b[6], b[5], b[4], b[3], b[2], b[1], b[0]
}

// SwapElements reverses the byte order of every elemSize-wide element of b in place.
// elemSize must be 1, 2, 4, 8, or 16; 1-byte elements are a no-op.
func SwapElements(b []byte, elemSize int) {
	switch elemSize {
	case 1:
		return
	case 2:
		for i := 0; i+2 <= len(b); i += 2 {
			SwapUint16In(b[i : i+2])
		}
	case 4:
		for i := 0; i+4 <= len(b); i += 4 {
			SwapUint32In(b[i : i+4])
		}
	case 8:
		for i := 0; i+8 <= len(b); i += 8 {
			SwapUint64In(b[i : i+8])
		}
	case 16:
		for i := 0; i+16 <= len(b); i += 16 {
			for x, y := i, i+15; x < y; x, y = x+1, y-1 {
				b[x], b[y] = b[y], b[x]
			}
		}
	}
}
