package render

import qrcode "github.com/skip2/go-qrcode"

// EncodeQR renders the payload as a PNG QR image of the given pixel size.
func EncodeQR(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
