package metrics

import "fmt"

// Tag creates a formatted DataDog tag string in "key:value" format.
func Tag(key, value string) string {
	return fmt.Sprintf("%s:%s", key, value)
}

// OperationTag creates an operation tag.
func OperationTag(op string) string {
	return Tag("operation", op)
}

// StatusTag creates a status tag (hit/miss/error).
func StatusTag(status string) string {
	return Tag("status", status)
}

// LayerTag creates a storage layer tag (memory/disk).
func LayerTag(layer string) string {
	return Tag("layer", layer)
}

// SourceTag creates an image source tag (cache/network).
func SourceTag(source string) string {
	return Tag("source", source)
}

// MethodTag creates an HTTP method tag.
func MethodTag(method string) string {
	return Tag("method", method)
}
