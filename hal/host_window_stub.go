//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow is unavailable without cgo; use RunHeadless.
func RunWindow(_ Config, _ func(HAL) (func() error, error)) error {
	return errors.New("hal: window mode requires cgo (build/run with CGO_ENABLED=1)")
}
