package render

import (
	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// QRCodePNG encodes payload as a PNG QR code, e.g. the preview URL so a phone
// can open it. An empty payload returns (nil, nil).
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	return qrcode.Encode(payload, qrcode.Medium, sizePx)
}

// QRCodeTerminal renders payload as block characters for printing to a terminal.
func QRCodeTerminal(payload string) (string, error) {
	if payload == "" {
		return "", nil
	}
	qrCode, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return "", err
	}
	return qrCode.ToSmallString(false), nil
}
