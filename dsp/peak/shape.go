package peak

import (
	"errors"
	"fmt"
	"strings"
)

// ErrArity is returned when a parameter vector does not match a shape.
var ErrArity = errors.New("peak: parameter count does not match shape")

// Shape selects a line-shape function.
type Shape int

const (
	// Gaussian is a normal-distribution profile.
	Gaussian Shape = iota
	// Lorentzian is a Cauchy profile normalised to height A.
	Lorentzian
	// Voigt is the pseudo-Voigt mixture of Gaussian and Lorentzian.
	Voigt
)

// ParseShape maps a shape code from a parameter table to a Shape.
// "V" selects Voigt, "G" Gaussian and "L" Lorentzian, case-insensitively.
// Any other code selects Lorentzian.
func ParseShape(code string) Shape {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "V", "VOIGT":
		return Voigt
	case "G", "GAUSS", "GAUSSIAN":
		return Gaussian
	default:
		return Lorentzian
	}
}

// Arity returns the number of free parameters of the shape.
func (s Shape) Arity() int {
	if s == Voigt {
		return 4
	}
	return 3
}

// Code returns the single-letter table code of the shape.
func (s Shape) Code() string {
	switch s {
	case Gaussian:
		return "G"
	case Voigt:
		return "V"
	default:
		return "L"
	}
}

func (s Shape) String() string {
	switch s {
	case Gaussian:
		return "Gaussian"
	case Lorentzian:
		return "Lorentzian"
	case Voigt:
		return "Voigt"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParamNames lists the parameter names of the shape in packing order.
func (s Shape) ParamNames() []string {
	names := []string{"intensity", "width", "center", "mix"}
	return names[:s.Arity()]
}

// Params holds the parameters of a single peak. Mix is only meaningful for
// Voigt peaks and is ignored by the other shapes.
type Params struct {
	Intensity float64
	Width     float64
	Center    float64
	Mix       float64
}

// Values returns the parameters as a slice of length s.Arity().
func (p Params) Values(s Shape) []float64 {
	return p.AppendTo(nil, s)
}

// AppendTo appends the s.Arity() parameters of p to dst in packing order.
func (p Params) AppendTo(dst []float64, s Shape) []float64 {
	dst = append(dst, p.Intensity, p.Width, p.Center)
	if s == Voigt {
		dst = append(dst, p.Mix)
	}
	return dst
}

// ParamsFromValues builds Params from a slice laid out as by Params.Values.
func ParamsFromValues(s Shape, v []float64) (Params, error) {
	if len(v) != s.Arity() {
		return Params{}, fmt.Errorf("%w: %s wants %d, got %d", ErrArity, s, s.Arity(), len(v))
	}
	p := Params{Intensity: v[0], Width: v[1], Center: v[2]}
	if s == Voigt {
		p.Mix = v[3]
	}
	return p, nil
}

// At returns the i-th parameter in packing order.
func (p Params) At(i int) float64 {
	switch i {
	case 0:
		return p.Intensity
	case 1:
		return p.Width
	case 2:
		return p.Center
	case 3:
		return p.Mix
	default:
		panic(fmt.Sprintf("peak: parameter index %d out of range", i))
	}
}
