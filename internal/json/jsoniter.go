//go:build jsoniter
// +build jsoniter

package json

import jsoniter "github.com/json-iterator/go"

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
	// Marshal is exported by followredirect/internal/json package.
	Marshal = json.Marshal
	// Unmarshal is exported by followredirect/internal/json package.
	Unmarshal = json.Unmarshal
	// MarshalIndent is exported by followredirect/internal/json package.
	MarshalIndent = json.MarshalIndent
	// NewDecoder is exported by followredirect/internal/json package.
	NewDecoder = json.NewDecoder
	// NewEncoder is exported by followredirect/internal/json package.
	NewEncoder = json.NewEncoder
)
