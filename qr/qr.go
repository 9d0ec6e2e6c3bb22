package qr

import (
	"encoding/base64"
	"errors"

	"github.com/skip2/go-qrcode"
)

// DataURI encodes the payload as a QR PNG and returns it as a data URI the
// dashboard can drop straight into an <img> tag.
func DataURI(payload string, size int) (string, error) {
	if payload == "" {
		return "", errors.New("empty payload")
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
