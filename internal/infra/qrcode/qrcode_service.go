package qrcode

import (
	"net/url"
	"strings"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const storePathSegment = "store"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateStoreLinkQR renders the public store link as a PNG.
func (s *qrcodeService) GenerateStoreLinkQR(link string) ([]byte, error) {
	if _, err := s.ParseStoreLinkQR(link); err != nil {
		return nil, err
	}

	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseStoreLinkQR returns the owner id of a scanned {base}/store/{ownerId} link.
func (s *qrcodeService) ParseStoreLinkQR(qrData string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse store link")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Errorf("invalid store link scheme: %q", u.Scheme)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] != storePathSegment || segments[len(segments)-1] == "" {
		return "", errors.Errorf("not a store link: %s", qrData)
	}

	return segments[len(segments)-1], nil
}
