package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateStoreLinkQR renders the public link of a store as a PNG QR code
	GenerateStoreLinkQR(link string) ([]byte, error)

	// ParseStoreLinkQR extracts the owner id from a scanned store link
	ParseStoreLinkQR(qrData string) (string, error)
}
