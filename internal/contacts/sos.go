package contacts

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Geolocator resolves the user's current coordinates. Failure (denied
// permission, unsupported device) surfaces as a user-facing error, not
// a panic.
type Geolocator interface {
	Current(ctx context.Context) (lat, lng float64, err error)
}

// ShareLocationLink builds a WhatsApp deep link that sends the
// contact an SOS message with a maps pin of the current position.
func ShareLocationLink(ctx context.Context, geo Geolocator, contact Contact) (string, error) {
	lat, lng, err := geo.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("contacts: unable to retrieve location: %w", err)
	}

	message := fmt.Sprintf("SOS! I need help. My current location: https://www.google.com/maps?q=%g,%g", lat, lng)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(contact.Phone), url.QueryEscape(message)), nil
}

func digitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
