package upload

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsSmallJPEG(t *testing.T) {
	err := Validate(Candidate{
		Filename:  "avatar.jpg",
		MIMEType:  "image/jpeg",
		SizeBytes: 1 << 20,
	})
	assert.NoError(t, err)
}

func TestValidateAcceptsEveryAllowedType(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"} {
		err := Validate(Candidate{MIMEType: mime, SizeBytes: 1024})
		assert.NoError(t, err, "expected %s to be accepted", mime)
	}
}

func TestValidateRejectsOversizedPNG(t *testing.T) {
	err := Validate(Candidate{
		Filename:  "huge.png",
		MIMEType:  "image/png",
		SizeBytes: 6 << 20,
	})
	require.Error(t, err)

	fields, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, fields, "size")
	assert.NotContains(t, fields, "type")
}

func TestValidateRejectsPDFRegardlessOfSize(t *testing.T) {
	for _, size := range []int64{100, 10 << 20} {
		err := Validate(Candidate{
			Filename:  "doc.pdf",
			MIMEType:  "application/pdf",
			SizeBytes: size,
		})
		require.Error(t, err)

		fields, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, fields, "type")
	}
}

func TestValidateExactLimitBoundary(t *testing.T) {
	assert.NoError(t, Validate(Candidate{MIMEType: "image/png", SizeBytes: MaxAvatarBytes}))
	assert.Error(t, Validate(Candidate{MIMEType: "image/png", SizeBytes: MaxAvatarBytes + 1}))
}

func TestValidateRequiresAType(t *testing.T) {
	err := Validate(Candidate{SizeBytes: 100})
	require.Error(t, err)

	fields, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, fields, "type")
}
