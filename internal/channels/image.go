package channels

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Upload is an image file as received from the guest.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	MsgImageType     = "Please select an image file (JPG, PNG, etc.)"
	MsgImageEmpty    = "The selected file is empty"
	msgImageTooLarge = "Image must be %s or smaller"
)

// StagedImage is a validated image ready for upload.
type StagedImage struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Size     int    `json:"size"`
	DataURL  string `json:"dataUrl"`
}

// imagePolicy checks uploads before anything reaches the network. The
// declared type must be allowed and must match what the bytes actually are.
type imagePolicy struct {
	maxBytes int64
	allowed  []string
}

func (p imagePolicy) stage(u Upload) (StagedImage, string) {
	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(u.ContentType, ";", 2)[0]))
	if declared != "" && !p.allows(declared) {
		return StagedImage{}, MsgImageType
	}
	if len(u.Data) == 0 {
		return StagedImage{}, MsgImageEmpty
	}
	if int64(len(u.Data)) > p.maxBytes {
		return StagedImage{}, fmt.Sprintf(msgImageTooLarge, humanBytes(p.maxBytes))
	}

	detected := mimetype.Detect(u.Data)
	actual := detected.String()
	if i := strings.IndexByte(actual, ';'); i >= 0 {
		actual = actual[:i]
	}
	if !p.allows(actual) {
		return StagedImage{}, MsgImageType
	}

	return StagedImage{
		Filename: u.Filename,
		MIME:     actual,
		Size:     len(u.Data),
		DataURL:  "data:" + actual + ";base64," + base64.StdEncoding.EncodeToString(u.Data),
	}, ""
}

func (p imagePolicy) allows(mime string) bool {
	return slices.Contains(p.allowed, mime)
}

func humanBytes(n int64) string {
	const mib = 1 << 20
	if n >= mib && n%mib == 0 {
		return fmt.Sprintf("%d MB", n/mib)
	}
	if n >= 1<<10 {
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
