package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizsynth"
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

// QuizKey builds the key of a generated quiz. contentHash identifies the study
// material; the remaining parameters are the request knobs that change the output.
func QuizKey(contentHash, subject, difficulty string, count int, types []string) string {
	return GenerateCacheKey("quiz", "generated", contentHash,
		subject, difficulty, strconv.Itoa(count), strings.Join(types, ","))
}
