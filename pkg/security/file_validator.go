package security

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Magic byte signatures per allowed extension.
var resumeMagicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

var photoMagicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
}

var resumeMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

var photoMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ValidateResumeFile checks a resume upload in three layers: extension
// whitelist, magic bytes matching the extension, and MIME whitelist.
// application/octet-stream is rejected except for doc/docx, which some
// detectors cannot classify but magic bytes already vouched for.
func ValidateResumeFile(filename string, data []byte, detectedMIME string) FileValidationResult {
	return validate(filename, data, detectedMIME, resumeMagicBytes, resumeMIMETypes, map[string]bool{".doc": true, ".docx": true})
}

// ValidatePhotoFile checks a profile photo upload (jpeg/png only).
func ValidatePhotoFile(filename string, data []byte, detectedMIME string) FileValidationResult {
	return validate(filename, data, detectedMIME, photoMagicBytes, photoMIMETypes, nil)
}

func validate(filename string, data []byte, detectedMIME string,
	magic map[string][][]byte, mimes map[string]bool, octetStreamOK map[string]bool) FileValidationResult {

	result := FileValidationResult{DetectedMIME: detectedMIME}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	signatures, allowed := magic[ext]
	if !allowed {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !matchesMagicBytes(signatures, data) {
		result.Error = "file content does not match extension"
		return result
	}

	if detectedMIME == "application/octet-stream" {
		if !octetStreamOK[ext] {
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !mimes[detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

func matchesMagicBytes(signatures [][]byte, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
