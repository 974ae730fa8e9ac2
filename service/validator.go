package service

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"meeting-summarizer/constant"
	"meeting-summarizer/dto"
	"mime"
	"slices"
	"strings"
)

type UploadPolicy struct {
	AllowedTypes     []string
	MaxSize          int64
	EnforceSizeLimit bool
}

func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		AllowedTypes:     constant.AllowedAudioTypes,
		MaxSize:          constant.DefaultMaxUploadSize,
		EnforceSizeLimit: true,
	}
}

// ValidateUpload checks the upload against the policy and returns the resolved
// content type. Uploads without a usable declared type are sniffed from their bytes.
func ValidateUpload(policy UploadPolicy, upload *dto.AudioUpload) (string, error) {
	if upload == nil {
		return "", fmt.Errorf("%w: no file provided", ErrInvalidUpload)
	}
	if len(upload.Data) == 0 {
		return "", fmt.Errorf("%w: file %q is empty", ErrInvalidUpload, upload.FileName)
	}

	if policy.EnforceSizeLimit && policy.MaxSize > 0 && int64(len(upload.Data)) > policy.MaxSize {
		return "", fmt.Errorf("%w: file size %s exceeds limit of %s", ErrInvalidUpload,
			humanize.IBytes(uint64(len(upload.Data))), humanize.IBytes(uint64(policy.MaxSize)))
	}

	contentType := normalizeMediaType(upload.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = normalizeMediaType(mimetype.Detect(upload.Data).String())
	}

	if !slices.Contains(policy.AllowedTypes, contentType) {
		return "", fmt.Errorf("%w: file type %q is not allowed, expected one of %s",
			ErrInvalidUpload, contentType, strings.Join(policy.AllowedTypes, ", "))
	}

	return contentType, nil
}

func normalizeMediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(contentType)
	}
	return mediaType
}
