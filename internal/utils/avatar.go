package utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// AvatarSize is the fixed square dimension avatars are resized to
// before they are persisted.
const AvatarSize = 200

// AvatarMimeType is the MIME type every processed avatar is encoded in.
const AvatarMimeType = "image/png"

// ProcessAvatar decodes an uploaded image, crops and resizes it to a
// fixed square, and re-encodes it as PNG. The account service persists
// the returned bytes wholesale and performs no image logic itself.
func ProcessAvatar(upload io.Reader) ([]byte, error) {
	img, err := imaging.Decode(upload, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding avatar image: %w", err)
	}

	img = imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding avatar image: %w", err)
	}

	return buf.Bytes(), nil
}
