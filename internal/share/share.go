// Package share encodes a generation into shareable URL query
// parameters and back.
package share

import (
	"net/url"
	"strconv"

	apperrors "playground-client/internal/errors"
)

const promptLimit = 100

// Link is the shareable subset of a generation.
type Link struct {
	DNA    string
	Prompt string
	Temp   float64
	TopP   float64
}

// Encode renders a link as a URL query string. The prompt is truncated
// to 100 characters.
func Encode(link Link) string {
	prompt := link.Prompt
	if runes := []rune(prompt); len(runes) > promptLimit {
		prompt = string(runes[:promptLimit])
	}

	values := url.Values{}
	values.Set("dna", link.DNA)
	values.Set("prompt", prompt)
	values.Set("temp", strconv.FormatFloat(link.Temp, 'f', -1, 64))
	values.Set("top_p", strconv.FormatFloat(link.TopP, 'f', -1, 64))
	return values.Encode()
}

// Decode parses a query string produced by Encode.
func Decode(query string) (Link, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return Link{}, apperrors.Wrap(apperrors.KindValidation, "malformed share link", err)
	}

	link := Link{
		DNA:    values.Get("dna"),
		Prompt: values.Get("prompt"),
	}

	if raw := values.Get("temp"); raw != "" {
		if link.Temp, err = strconv.ParseFloat(raw, 64); err != nil {
			return Link{}, apperrors.Wrap(apperrors.KindValidation, "malformed temp in share link", err)
		}
	}
	if raw := values.Get("top_p"); raw != "" {
		if link.TopP, err = strconv.ParseFloat(raw, 64); err != nil {
			return Link{}, apperrors.Wrap(apperrors.KindValidation, "malformed top_p in share link", err)
		}
	}

	return link, nil
}
