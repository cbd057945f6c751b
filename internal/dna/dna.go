// Package dna implements the fingerprint engine: validation and
// recombination of the 64-character DNA tokens the generation service
// attaches to every output. Everything here is pure computation so
// remixes are reproducible without contacting the service.
package dna

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/rand"

	apperrors "playground-client/internal/errors"
)

// Length is the fixed size of a DNA fingerprint.
const Length = 64

// DefaultCrossover is the midpoint crossover used by Remix.
const DefaultCrossover = 32

const hexChars = "0123456789abcdef"

// Validate reports whether fp is a well-formed fingerprint.
func Validate(fp string) bool {
	return len(fp) == Length
}

// Remix combines two fingerprints at the midpoint: the first 32
// characters of a followed by the last 32 characters of b. Same inputs
// always produce the same output.
func Remix(a, b string) (string, error) {
	return RemixAt(a, b, DefaultCrossover)
}

// RemixAt combines two fingerprints at an arbitrary crossover point.
// Points outside [1, 63] fall back to the midpoint.
func RemixAt(a, b string, point int) (string, error) {
	if !Validate(a) || !Validate(b) {
		return "", apperrors.New(apperrors.KindValidation, "invalid DNA format")
	}

	if point < 1 || point >= Length {
		point = DefaultCrossover
	}

	return a[:point] + b[point:], nil
}

// Mutate flips each character of fp to a random hex character with the
// given probability. Rates outside [0, 1] are clamped.
func Mutate(fp string, rate float64) (string, error) {
	if !Validate(fp) {
		return "", apperrors.New(apperrors.KindValidation, "invalid DNA format")
	}

	if rate < 0 {
		rate = 0
	} else if rate > 1 {
		rate = 1
	}

	out := []byte(fp)
	for i := range out {
		if rand.Float64() < rate {
			out[i] = hexChars[rand.Intn(len(hexChars))]
		}
	}

	return string(out), nil
}

// Compat describes how well two fingerprints combine.
type Compat struct {
	Similarity           float64 `json:"similarity_percentage"`
	Differences          int     `json:"differences"`
	RecommendedCrossover int     `json:"recommended_crossover"`
	Rating               string  `json:"compatibility"`
}

// Compatibility analyzes two fingerprints for remixing: Hamming
// similarity, a recommended crossover point, and a coarse rating.
func Compatibility(a, b string) (*Compat, error) {
	if !Validate(a) || !Validate(b) {
		return nil, apperrors.New(apperrors.KindValidation, "invalid DNA format")
	}

	differences := 0
	for i := 0; i < Length; i++ {
		if a[i] != b[i] {
			differences++
		}
	}
	similarity := float64(Length-differences) / Length * 100

	recommended := 16
	if similarity > 50 {
		recommended = 32
	}

	rating := "Low"
	switch {
	case similarity > 70:
		rating = "High"
	case similarity > 40:
		rating = "Medium"
	}

	return &Compat{
		Similarity:           similarity,
		Differences:          differences,
		RecommendedCrossover: recommended,
		Rating:               rating,
	}, nil
}

// New derives a fingerprint from generation parameters. This mirrors
// the server's scheme for offline previews; the dna the server returns
// remains authoritative.
func New(prompt string, temperature, topP float64, model string) string {
	// Map keys marshal sorted, keeping the hash stable
	data := map[string]interface{}{
		"model":       model,
		"prompt":      prompt,
		"temperature": temperature,
		"top_p":       topP,
		"version":     "1.0",
	}

	encoded, _ := json.Marshal(data)
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])[:Length]
}
