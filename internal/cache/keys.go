package cache

import "strings"

const (
	GlobalKeyPrefix = "textquiz"

	ServiceOCR     = "ocr"
	ObjectTypeText = "text"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// OCRTextKey is the key of the recognized text for an upload, scoped to the
// OCR engine and the preprocessing parameters that produced it.
func OCRTextKey(imageDigest, engine, pipeline string) string {
	return GenerateCacheKey(ServiceOCR, ObjectTypeText, imageDigest, engine, pipeline)
}
