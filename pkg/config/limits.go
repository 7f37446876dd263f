// Package config holds the VM's virtualizable resource limits: the values an
// embedder may override, loaded from YAML the way the rest of this
// repository's configuration is loaded.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits is the set of resource bounds the interpreter enforces at every
// step. All of them have sane defaults (see DefaultLimits) and may be
// virtualized by the embedder.
type Limits struct {
	// MaxStackSize is the maximum number of primitive-equivalent slots
	// reachable from the evaluation and alt stacks, after reclamation.
	MaxStackSize int `yaml:"MaxStackSize"`
	// MaxItemSize is the maximum length, in bytes, of any ByteString or Buffer.
	MaxItemSize int `yaml:"MaxItemSize"`
	// MaxInvocationStackSize is the maximum depth of the invocation stack.
	MaxInvocationStackSize int `yaml:"MaxInvocationStackSize"`
	// MaxArraySize is the maximum number of entries in an Array, Struct, or Map.
	MaxArraySize int `yaml:"MaxArraySize"`
	// MaxSizeForBigInteger is the maximum two's-complement encoding length,
	// in bytes, of an Integer used in an arithmetic opcode.
	MaxSizeForBigInteger int `yaml:"MaxSizeForBigInteger"`
	// MaxShift is the maximum (and, negated, minimum) shift count accepted
	// by SHL/SHR.
	MaxShift int `yaml:"MaxShift"`
}

// DefaultLimits returns the limits named in the core specification's
// "Default limits" section.
func DefaultLimits() *Limits {
	return &Limits{
		MaxStackSize:            2048,
		MaxItemSize:              1 << 20,
		MaxInvocationStackSize:  1024,
		MaxArraySize:            1024,
		MaxSizeForBigInteger:    32,
		MaxShift:                256,
	}
}

// Validate reports whether every limit is a usable, positive value.
func (l *Limits) Validate() error {
	if l == nil {
		return fmt.Errorf("limits: nil configuration")
	}
	fields := map[string]int{
		"MaxStackSize":           l.MaxStackSize,
		"MaxItemSize":            l.MaxItemSize,
		"MaxInvocationStackSize": l.MaxInvocationStackSize,
		"MaxArraySize":           l.MaxArraySize,
		"MaxSizeForBigInteger":   l.MaxSizeForBigInteger,
		"MaxShift":               l.MaxShift,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("limits: %s must be positive, got %d", name, v)
		}
	}
	return nil
}

// LoadLimits reads a YAML-encoded Limits document from path. Any field left
// unset in the document keeps its DefaultLimits value.
func LoadLimits(path string) (*Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("limits: %w", err)
	}
	l := DefaultLimits()
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("limits: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}
