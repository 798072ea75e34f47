// Package upload validates candidate files against the avatar upload
// policy before any network call is made.
package upload

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// MaxAvatarBytes is the upload size ceiling (5 MiB)
const MaxAvatarBytes = 5242880

// allowedTypes is the fixed avatar MIME policy; it is not configurable
// at call time.
var allowedTypes = []interface{}{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Candidate is a transient file awaiting validation and upload. It is
// never persisted.
type Candidate struct {
	Filename  string
	Bytes     []byte
	MIMEType  string
	SizeBytes int64
}

// Validate checks a candidate against the avatar policy. Violations come
// back as a validation.Errors map keyed by "type" and "size" with
// human-readable reasons. Pure function, no side effects.
func Validate(c Candidate) error {
	return validation.Errors{
		"type": validation.Validate(c.MIMEType,
			validation.Required.Error("an image file is required"),
			validation.In(allowedTypes...).Error("only JPEG, PNG, GIF and WebP images are accepted"),
		),
		"size": validation.Validate(c.SizeBytes,
			validation.Max(int64(MaxAvatarBytes)).Error("image must be 5 MB or smaller"),
		),
	}.Filter()
}
